// internal/history/store.go
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gitmind-explorer/internal/search"
)

// MaxRecent bounds the number of rows Recent returns.
const MaxRecent = 100

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Entry is one settled search as stored in the searches table.
type Entry struct {
	ID              int64     `db:"id" json:"id"`
	Handle          string    `db:"handle" json:"handle"`
	Generation      int64     `db:"generation" json:"generation"`
	Phase           string    `db:"phase" json:"phase"`
	ErrorKind       string    `db:"error_kind" json:"error_kind,omitempty"`
	RepositoryCount int       `db:"repository_count" json:"repository_count"`
	InsightStatus   string    `db:"insight_status" json:"insight_status,omitempty"`
	StartedAt       time.Time `db:"started_at" json:"started_at"`
	FinishedAt      time.Time `db:"finished_at" json:"finished_at"`
}

// Store appends settled searches to Postgres. It is write-mostly: nothing
// read from it ever feeds a search result.
type Store struct {
	db     DBTX
	logger *slog.Logger
}

func NewStore(db DBTX, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

const insertSearch = `
INSERT INTO searches (handle, generation, phase, error_kind, repository_count, insight_status, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// RecordSearch implements search.Recorder.
func (s *Store) RecordSearch(ctx context.Context, rec search.Record) error {
	_, err := s.db.Exec(ctx, insertSearch,
		rec.Handle,
		int64(rec.Generation),
		string(rec.Phase),
		string(rec.ErrorKind),
		rec.RepositoryCount,
		rec.InsightStatus,
		rec.StartedAt,
		rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting search for %q: %w", rec.Handle, err)
	}
	s.logger.Debug("Recorded search", "handle", rec.Handle, "phase", rec.Phase)
	return nil
}

const selectRecent = `
SELECT id, handle, generation, phase, error_kind, repository_count, insight_status, started_at, finished_at
FROM searches
ORDER BY finished_at DESC, id DESC
LIMIT $1`

// Recent returns the latest searches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxRecent {
		return nil, fmt.Errorf("limit must be between 1 and %d, got %d", MaxRecent, limit)
	}

	rows, err := s.db.Query(ctx, selectRecent, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, fmt.Errorf("scanning recent searches: %w", err)
	}
	return entries, nil
}
