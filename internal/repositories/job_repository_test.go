package repositories

import (
	"testing"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobQueueOrderAndLifecycle(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	first := models.NewSyncJob("github")
	second := models.NewSyncJob("github")
	other := models.NewSyncJob("slack")
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))
	require.NoError(t, repo.Create(other))

	// Oldest pending job for the source comes first
	next, err := repo.GetNextPendingJob("github")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, first.ID, next.ID)

	next.MarkStarted("sync-github")
	require.NoError(t, repo.Update(next))

	// The in-progress job is no longer pending
	next, err = repo.GetNextPendingJob("github")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second.ID, next.ID)

	// Completion records the sync stats
	next.MarkCompleted(models.SyncStats{MembersRegistered: 2, ActivitiesAdded: 40, Errors: 1})
	require.NoError(t, repo.Update(next))

	stored, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, stored.Status)
	assert.Equal(t, 2, stored.Stats.MembersRegistered)
	assert.Equal(t, 40, stored.Stats.ActivitiesAdded)
	assert.Equal(t, 1, stored.Stats.Errors)
	assert.NotNil(t, stored.CompletedAt)
}

func TestJobQueueEmptyReturnsNil(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	job, err := repo.GetNextPendingJob("github")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestJobFailureKeepsErrorMessage(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	job := models.NewSyncJob("github")
	require.NoError(t, repo.Create(job))

	job.MarkStarted("sync-github")
	job.MarkFailed("identity store unreachable")
	require.NoError(t, repo.Update(job))

	stored, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "identity store unreachable", *stored.ErrorMessage)
}
