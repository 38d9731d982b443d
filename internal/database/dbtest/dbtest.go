// Package dbtest provides an in-memory database for package tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pracor/pracor/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// New opens an isolated in-memory SQLite database, applies every migration and
// returns a client bound to it. The database is closed when the test ends.
func New(t *testing.T) database.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)

	// Every query shares one connection so the in-memory database and its
	// pragmas stay alive for the whole test.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.ExecContext(t.Context(), "PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	logger := zap.NewNop()
	require.NoError(t, database.Migrate(t.Context(), db, logger))

	client := database.NewClient(db, logger)
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
