package testutil

import (
	"context"
	"database/sql"
	"juniorguru-sync/internal/db"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// OpenDB opens an in-memory database with the schema applied, it is closed
// when the test finishes.
func OpenDB(t testing.TB) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: gets its own database
	database.SetMaxOpenConns(1)
	t.Cleanup(func() {
		database.Close()
	})

	_, err = database.ExecContext(context.Background(), db.Schema)
	require.NoError(t, err)
	return database
}

// OpenQueries is OpenDB wrapped in db.Queries.
func OpenQueries(t testing.TB) *db.Queries {
	t.Helper()
	return db.New(OpenDB(t))
}
