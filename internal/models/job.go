package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a sync job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// SyncJob is one queued reconciliation pass for a source. The stats
// columns are filled in when the job completes.
type SyncJob struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	Status       JobStatus  `json:"status"`
	ErrorMessage *string    `json:"error_message"`
	Stats        SyncStats  `json:"stats"`
	WorkerID     *string    `json:"worker_id"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewSyncJob creates a new pending SyncJob with a generated UUID
func NewSyncJob(source string) *SyncJob {
	now := time.Now()
	return &SyncJob{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkStarted marks the job as started by the given worker
func (j *SyncJob) MarkStarted(workerID string) {
	now := time.Now()
	j.Status = JobStatusInProgress
	j.WorkerID = &workerID
	j.StartedAt = &now
}

// MarkCompleted marks the job as completed with its sync stats
func (j *SyncJob) MarkCompleted(stats SyncStats) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.Stats = stats
	j.CompletedAt = &now
}

// MarkFailed marks the job as failed with an error message
func (j *SyncJob) MarkFailed(message string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = &message
	j.CompletedAt = &now
}
