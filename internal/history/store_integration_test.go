//go:build integration

// internal/history/store_integration_test.go
package history

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"gitmind-explorer/internal/search"
)

func setupTestDatabase(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	// Start a postgres container
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", connStr)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	teardown := func() {
		dbpool.Close()
		require.NoError(t, pgContainer.Terminate(ctx))
	}

	return dbpool, teardown
}

func TestStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbpool, teardown := setupTestDatabase(ctx, t)
	defer teardown()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := NewStore(dbpool, logger)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordSearch(ctx, search.Record{
		Handle:     "ghost",
		Generation: 1,
		Phase:      search.PhaseError,
		ErrorKind:  search.ErrorKindAccountNotFound,
		StartedAt:  base,
		FinishedAt: base.Add(time.Second),
	}))
	require.NoError(t, store.RecordSearch(ctx, search.Record{
		Handle:          "octocat",
		Generation:      2,
		Phase:           search.PhaseLoaded,
		RepositoryCount: 6,
		InsightStatus:   "generated",
		StartedAt:       base.Add(time.Minute),
		FinishedAt:      base.Add(time.Minute + 2*time.Second),
	}))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "octocat", entries[0].Handle, "newest first")
	assert.Equal(t, "loaded", entries[0].Phase)
	assert.Equal(t, 6, entries[0].RepositoryCount)
	assert.Equal(t, "generated", entries[0].InsightStatus)
	assert.Equal(t, "ghost", entries[1].Handle)
	assert.Equal(t, "account_not_found", entries[1].ErrorKind)
	assert.True(t, entries[1].FinishedAt.Equal(base.Add(time.Second)))

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
