// Package testpg starts a throwaway PostgreSQL container with the schema
// applied. It is used by tests behind the integration build tag.
package testpg

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/recipebox/db/migrations"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/pg"
)

const image = "postgres:17-alpine"

// New returns a migrated pool. The container is terminated on cleanup.
func New(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("recipebox"),
		tcpostgres.WithUsername("recipebox"),
		tcpostgres.WithPassword("recipebox"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := pg.Config{ConnectionString: dsn, MaxConns: 4, RetryAttempts: 5, RetryInterval: time.Second}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, migrations.FS, cfg, logger.Discard()))
	return pool
}
