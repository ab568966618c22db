// internal/api/respond.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gitmind-explorer/internal/model"
	"gitmind-explorer/internal/search"
)

// stateView is the wire form of search.State. The insight outcome is
// flattened to its display text here and nowhere earlier.
type stateView struct {
	Generation    uint64                    `json:"generation"`
	Query         string                    `json:"query"`
	Phase         search.Phase              `json:"phase"`
	Loading       bool                      `json:"loading"`
	Analyzing     bool                      `json:"analyzing"`
	Account       *model.Account            `json:"account"`
	Repositories  []model.RepositorySummary `json:"repositories"`
	Insight       *string                   `json:"insight"`
	InsightStatus string                    `json:"insight_status,omitempty"`
	Error         *string                   `json:"error"`
	ErrorKind     search.ErrorKind          `json:"error_kind,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

func toStateView(s search.State) stateView {
	v := stateView{
		Generation:   s.Generation,
		Query:        s.Query,
		Phase:        s.Phase,
		Loading:      s.Loading,
		Analyzing:    s.Analyzing,
		Account:      s.Account,
		Repositories: s.Repositories,
		ErrorKind:    s.ErrorKind,
		Warnings:     s.Warnings,
	}
	if v.Repositories == nil {
		v.Repositories = []model.RepositorySummary{}
	}
	if s.Insight != nil {
		text := s.Insight.Text
		v.Insight = &text
		v.InsightStatus = s.Insight.Status.String()
	}
	if s.HasError() {
		msg := s.Error
		v.Error = &msg
	}
	return v
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
