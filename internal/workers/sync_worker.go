package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/internal/services"
	"github.com/mertkaya/teampulse/internal/sources"
	"github.com/mertkaya/teampulse/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SyncWorker processes sync jobs for exactly one source. One worker
// per source keeps same-source syncs strictly sequential; workers for
// different sources run concurrently without coordination.
type SyncWorker struct {
	*BaseWorker
	source       string
	adapter      sources.Adapter
	jobRepo      *repositories.JobRepository
	syncService  *services.SyncService
	pollInterval time.Duration
	windowDays   int
}

// NewSyncWorker creates a sync worker owning one source
func NewSyncWorker(
	workerID string,
	adapter sources.Adapter,
	jobRepo *repositories.JobRepository,
	syncService *services.SyncService,
	pollInterval time.Duration,
	windowDays int,
) *SyncWorker {
	return &SyncWorker{
		BaseWorker:   NewBaseWorker(workerID),
		source:       adapter.Name(),
		adapter:      adapter,
		jobRepo:      jobRepo,
		syncService:  syncService,
		pollInterval: pollInterval,
		windowDays:   windowDays,
	}
}

// Start begins polling the job queue for this worker's source
func (w *SyncWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Sync worker %s started for source %s", w.WorkerID, w.source)

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Sync worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Sync worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(w.source)
			if err != nil {
				logger.WithError(err).Errorf("Sync worker %s failed to fetch job", w.WorkerID)
				time.Sleep(w.pollInterval)
				continue
			}

			if job == nil {
				time.Sleep(w.pollInterval)
				continue
			}

			w.processJob(ctx, job)
		}
	}
}

// processJob runs one sync pass and records the outcome on the job row
func (w *SyncWorker) processJob(ctx context.Context, job *models.SyncJob) {
	job.MarkStarted(w.WorkerID)
	if err := w.jobRepo.Update(job); err != nil {
		logger.WithError(err).Errorf("Sync worker %s failed to claim job %s", w.WorkerID, job.ID)
		return
	}

	until := time.Now()
	since := until.AddDate(0, 0, -w.windowDays)

	stats, err := w.syncService.SyncAdapter(ctx, w.adapter, since, until)
	if err != nil {
		// Systemic failure: record and leave retry to the next job.
		// Re-running is safe, the sync is idempotent.
		job.MarkFailed(fmt.Sprintf("sync failed: %v", err))
		if updateErr := w.jobRepo.Update(job); updateErr != nil {
			logger.WithError(updateErr).Errorf("Sync worker %s failed to record job failure", w.WorkerID)
		}
		return
	}

	job.MarkCompleted(*stats)
	if err := w.jobRepo.Update(job); err != nil {
		logger.WithError(err).Errorf("Sync worker %s failed to complete job %s", w.WorkerID, job.ID)
		return
	}

	logger.WithFields(logrus.Fields{
		"worker_id":          w.WorkerID,
		"job_id":             job.ID,
		"source":             w.source,
		"members_registered": stats.MembersRegistered,
		"activities_added":   stats.ActivitiesAdded,
		"errors":             stats.Errors,
	}).Info("Sync job completed")
}
