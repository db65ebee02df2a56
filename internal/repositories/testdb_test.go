package repositories

import (
	"database/sql"
	"testing"

	"github.com/mertkaya/teampulse/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the full schema applied
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory DB
	db.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db, "../../migrations"))

	t.Cleanup(func() { db.Close() })
	return db
}
