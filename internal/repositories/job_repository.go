package repositories

import (
	"database/sql"

	"github.com/mertkaya/teampulse/internal/models"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new sync job
func (r *JobRepository) Create(job *models.SyncJob) error {
	query := `
		INSERT INTO sync_jobs (
			id, source, status, error_message, members_registered,
			activities_added, errors, worker_id, started_at, completed_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID, job.Source, job.Status, job.ErrorMessage,
		job.Stats.MembersRegistered, job.Stats.ActivitiesAdded, job.Stats.Errors,
		job.WorkerID, job.StartedAt, job.CompletedAt,
		job.CreatedAt, job.UpdatedAt,
	)
	return err
}

// GetByID retrieves a sync job by ID
func (r *JobRepository) GetByID(id string) (*models.SyncJob, error) {
	query := `
		SELECT id, source, status, error_message, members_registered,
			   activities_added, errors, worker_id, started_at, completed_at,
			   created_at, updated_at
		FROM sync_jobs WHERE id = ?
	`

	return scanJob(r.db.QueryRow(query, id))
}

// GetNextPendingJob returns the oldest pending job for a source, or
// nil when the queue is empty. One worker owns each source, which
// keeps syncs of the same source strictly sequential.
func (r *JobRepository) GetNextPendingJob(source string) (*models.SyncJob, error) {
	query := `
		SELECT id, source, status, error_message, members_registered,
			   activities_added, errors, worker_id, started_at, completed_at,
			   created_at, updated_at
		FROM sync_jobs
		WHERE source = ? AND status = ?
		ORDER BY created_at
		LIMIT 1
	`

	job, err := scanJob(r.db.QueryRow(query, source, models.JobStatusPending))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// Update updates a sync job's status and stats
func (r *JobRepository) Update(job *models.SyncJob) error {
	query := `
		UPDATE sync_jobs SET
			status = ?, error_message = ?, members_registered = ?,
			activities_added = ?, errors = ?, worker_id = ?,
			started_at = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.Status, job.ErrorMessage,
		job.Stats.MembersRegistered, job.Stats.ActivitiesAdded, job.Stats.Errors,
		job.WorkerID, job.StartedAt, job.CompletedAt, job.ID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.SyncJob, error) {
	job := &models.SyncJob{}
	err := row.Scan(
		&job.ID, &job.Source, &job.Status, &job.ErrorMessage,
		&job.Stats.MembersRegistered, &job.Stats.ActivitiesAdded, &job.Stats.Errors,
		&job.WorkerID, &job.StartedAt, &job.CompletedAt,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}
