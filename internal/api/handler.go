// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gitmind-explorer/internal/history"
)

// RecentSearches lists settled searches, newest first.
type RecentSearches interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	sessions *Sessions
	history  RecentSearches
	logger   *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
// hist may be nil, in which case the history route is not mounted.
func NewRouter(sessions *Sessions, hist RecentSearches, logger *slog.Logger) http.Handler {
	h := &Handler{
		sessions: sessions,
		history:  hist,
		logger:   logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", h.createSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Post("/search", h.submitSearch)
		})
		if hist != nil {
			r.Get("/searches/recent", h.getRecentSearches)
		}
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createSession registers a new idle session.
// POST /v1/sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	id, o := h.sessions.Create()
	h.logger.Debug("Session created", "session", id)
	respondWithJSON(w, http.StatusCreated, map[string]any{
		"id":    id,
		"state": toStateView(o.Snapshot()),
	})
}

// getSession returns the current state of a session; clients poll it while analyzing.
// GET /v1/sessions/{id}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	o, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}
	respondWithJSON(w, http.StatusOK, toStateView(o.Snapshot()))
}

// deleteSession drops a session and cancels its search.
// DELETE /v1/sessions/{id}
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(chi.URLParam(r, "id")) {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type searchRequest struct {
	Username string `json:"username"`
}

// submitSearch starts a search in a session.
// POST /v1/sessions/{id}/search?wait=none|loaded|insight
//
// The response carries the state at the requested boundary (default
// "loaded": profile and repositories settled, insight possibly pending).
// A blank username leaves the session untouched.
func (h *Handler) submitSearch(w http.ResponseWriter, r *http.Request) {
	o, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wait := r.URL.Query().Get("wait")
	if wait == "" {
		wait = "loaded"
	}
	if wait != "none" && wait != "loaded" && wait != "insight" {
		respondWithError(w, http.StatusBadRequest, "Invalid 'wait' parameter. Must be one of none, loaded, insight.")
		return
	}

	run := o.Submit(r.Context(), req.Username)
	if run == nil {
		respondWithJSON(w, http.StatusOK, toStateView(o.Snapshot()))
		return
	}

	var boundary <-chan struct{}
	switch wait {
	case "loaded":
		boundary = run.Loaded()
	case "insight":
		boundary = run.Done()
	}
	if boundary != nil {
		select {
		case <-boundary:
		case <-r.Context().Done():
			return
		}
	}

	code := http.StatusOK
	if wait == "none" {
		code = http.StatusAccepted
	}
	respondWithJSON(w, code, toStateView(o.Snapshot()))
}

// getRecentSearches lists the latest settled searches.
// GET /v1/searches/recent?limit=N
func (h *Handler) getRecentSearches(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "10" // Default limit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > history.MaxRecent {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 100.")
		return
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list recent searches", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}
