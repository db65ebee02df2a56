package services

import (
	"database/sql"
	"testing"

	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/pkg/database"
	"github.com/stretchr/testify/require"
)

// testStack wires the full service stack over an in-memory database
type testStack struct {
	db         *sql.DB
	identity   *IdentityService
	activity   *ActivityService
	sync       *SyncService
	statistics *StatisticsService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory DB
	db.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db, "../../migrations"))
	t.Cleanup(func() { db.Close() })

	identity := NewIdentityService(
		repositories.NewMemberRepository(db),
		repositories.NewIdentifierRepository(db),
	)
	activity := NewActivityService(repositories.NewActivityRepository(db))

	return &testStack{
		db:         db,
		identity:   identity,
		activity:   activity,
		sync:       NewSyncService(identity, activity),
		statistics: NewStatisticsService(identity, activity),
	}
}

func strPtr(s string) *string { return &s }
