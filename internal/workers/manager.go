package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/internal/services"
	"github.com/mertkaya/teampulse/internal/sources"
	"github.com/mertkaya/teampulse/pkg/config"
	"github.com/mertkaya/teampulse/pkg/logger"
)

// WorkerManager owns the lifecycle of all sync workers
type WorkerManager struct {
	workers     []Worker
	registry    *sources.Registry
	jobRepo     *repositories.JobRepository
	syncService *services.SyncService
	cfg         *config.Config
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	registry *sources.Registry,
	jobRepo *repositories.JobRepository,
	syncService *services.SyncService,
	cfg *config.Config,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:     make([]Worker, 0),
		registry:    registry,
		jobRepo:     jobRepo,
		syncService: syncService,
		cfg:         cfg,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// StartAll starts one sync worker per configured source. The
// one-worker-per-source rule is what keeps same-source syncs from
// overlapping; do not start two workers for the same source.
func (wm *WorkerManager) StartAll() error {
	pollInterval := time.Duration(wm.cfg.Sync.PollInterval) * time.Second

	for _, source := range wm.cfg.Sync.Sources {
		adapter, err := wm.registry.Get(source)
		if err != nil {
			return fmt.Errorf("cannot start worker: %w", err)
		}

		worker := NewSyncWorker(
			fmt.Sprintf("sync-%s", source),
			adapter,
			wm.jobRepo,
			wm.syncService,
			pollInterval,
			wm.cfg.Sync.WindowDays,
		)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	logger.Infof("Started %d sync workers", len(wm.workers))
	return nil
}

// startWorker runs a worker in its own goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Errorf("Worker %s exited with error", worker.GetWorkerID())
		}
	}()
}

// StopAll gracefully stops all workers and waits for them to exit
func (wm *WorkerManager) StopAll() {
	wm.cancel()
	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).Errorf("Failed to stop worker %s", worker.GetWorkerID())
		}
	}
	wm.wg.Wait()
	logger.Info("All workers stopped")
}
