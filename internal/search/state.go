// internal/search/state.go
package search

import (
	"errors"

	custom_errors "gitmind-explorer/internal/errors"
	"gitmind-explorer/internal/insight"
	"gitmind-explorer/internal/model"
)

// Phase is the coarse position of the orchestrator in its state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

// ErrorKind classifies an account lookup failure.
type ErrorKind string

const (
	ErrorKindNone            ErrorKind = ""
	ErrorKindAccountNotFound ErrorKind = "account_not_found"
	ErrorKindNetwork         ErrorKind = "network_error"
)

// ErrorMessage is the single user-facing message for a failed account lookup.
const ErrorMessage = "User not found or API error."

// State is a snapshot of one search. After a search completes exactly one of
// Account and Error is set, unless the orchestrator is still idle.
type State struct {
	Generation   uint64
	Query        string
	Phase        Phase
	Loading      bool
	Analyzing    bool
	Account      *model.Account
	Repositories []model.RepositorySummary
	Insight      *insight.Outcome
	Error        string
	ErrorKind    ErrorKind
	Warnings     []string
}

// HasError reports whether the account lookup failed.
func (s State) HasError() bool { return s.Error != "" }

// InsightText returns the displayable insight, or "" while none is available.
func (s State) InsightText() string {
	if s.Insight == nil {
		return ""
	}
	return s.Insight.Text
}

func (s State) clone() State {
	out := s
	if s.Account != nil {
		account := *s.Account
		out.Account = &account
	}
	if s.Repositories != nil {
		out.Repositories = append([]model.RepositorySummary(nil), s.Repositories...)
		if out.Repositories == nil {
			out.Repositories = []model.RepositorySummary{}
		}
	}
	if s.Insight != nil {
		outcome := *s.Insight
		out.Insight = &outcome
	}
	if s.Warnings != nil {
		out.Warnings = append([]string(nil), s.Warnings...)
	}
	return out
}

func classify(err error) ErrorKind {
	var notFound *custom_errors.ErrAccountNotFound
	if errors.As(err, &notFound) {
		return ErrorKindAccountNotFound
	}
	return ErrorKindNetwork
}
