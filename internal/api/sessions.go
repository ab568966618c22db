// internal/api/sessions.go
package api

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"gitmind-explorer/internal/search"
)

// Sessions maps session IDs to their orchestrators. The least recently used
// session is evicted, and its in-flight search cancelled, once capacity is reached.
type Sessions struct {
	cache           *lru.Cache[string, *search.Orchestrator]
	newOrchestrator func() *search.Orchestrator
}

func NewSessions(capacity int, newOrchestrator func() *search.Orchestrator) (*Sessions, error) {
	cache, err := lru.NewWithEvict[string, *search.Orchestrator](capacity, func(_ string, o *search.Orchestrator) {
		o.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Sessions{cache: cache, newOrchestrator: newOrchestrator}, nil
}

// Create registers a fresh idle session.
func (s *Sessions) Create() (string, *search.Orchestrator) {
	id := uuid.NewString()
	o := s.newOrchestrator()
	s.cache.Add(id, o)
	return id, o
}

func (s *Sessions) Get(id string) (*search.Orchestrator, bool) {
	return s.cache.Get(id)
}

// Delete removes a session and cancels its in-flight search.
func (s *Sessions) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
