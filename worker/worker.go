package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/services"
	"medstaff-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// Worker runs the nightly license re-verification job
type Worker struct {
	Worker *models.Worker // Use pointer to avoid copying mutex

	profRepo         repository.ProfessionalRepositoryInterface
	briefcaseService services.BriefcaseServiceInterface
}

func NewWorker(ctx context.Context, cfg *models.Config, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Unique owner ID for this instance
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("recheck-%s-%s", hostname, uuid.New().String()[:8])

	lockFilePath := cfg.WorkerLockFilePath
	if lockFilePath == "" {
		lockFilePath = fmt.Sprintf("/tmp/medstaff-recheck-%s.lock", cfg.AppEnv)
	}

	workerConfig := &models.WorkerConfig{
		CronSchedule:      cfg.WorkerCronSchedule,
		LockTimeout:       30 * time.Minute,
		LockRetryInterval: 5 * time.Second,
		Environment:       cfg.AppEnv,
		LockFilePath:      lockFilePath,
		DryRun:            os.Getenv("RECHECK_DRY_RUN") == "true",
		RunOnce:           os.Getenv("RECHECK_RUN_ONCE") == "true",
	}

	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize DynamoDB client: %w", err)
	}
	store, err := dal.NewObjectStoreClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client: %w", err)
	}

	repo := repository.NewRepository(dbclient, cfg, log)
	svc := services.NewService(repo, store, cfg, log)

	lockManager := NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment)

	cronJob := cron.New()
	ctx, cancel := context.WithCancel(ctx)

	return &Worker{
		Worker: &models.Worker{
			Config:       cfg,
			Logger:       log,
			CronJob:      cronJob,
			LockManager:  lockManager,
			WorkerConfig: workerConfig,
			OwnerID:      ownerID,
			StopChan:     make(chan struct{}),
			Ctx:          ctx,
			Cancel:       cancel,
		},
		profRepo:         repo.Professional,
		briefcaseService: svc.GetBriefcaseService(),
	}, nil
}

// Start starts the recheck worker
func (w *Worker) Start() error {
	w.Worker.Mu.Lock()
	defer w.Worker.Mu.Unlock()

	if w.Worker.IsRunning {
		return fmt.Errorf("worker is already running")
	}

	select {
	case <-w.Worker.Ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	w.Worker.Logger.Infof("Starting license recheck worker with schedule: %s", w.Worker.WorkerConfig.CronSchedule)
	w.Worker.Logger.Infof("Worker ID: %s", w.Worker.OwnerID)

	if w.Worker.WorkerConfig.RunOnce {
		w.Worker.Logger.Info("Running in RunOnce mode, executing recheck once and stopping")
		w.Worker.IsRunning = true
		go w.runOnce()
		return nil
	}

	if err := w.Worker.CronJob.AddFunc(w.Worker.WorkerConfig.CronSchedule, w.executeRecheckWithContext); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.Worker.CronJob.Start()
	w.Worker.IsRunning = true

	w.Worker.Logger.Info("License recheck worker started successfully")
	return nil
}

// Stop stops the recheck worker
func (w *Worker) Stop() error {
	var err error
	w.Worker.StopOnce.Do(func() {
		w.Worker.Mu.Lock()
		defer w.Worker.Mu.Unlock()

		w.Worker.Logger.Info("Stopping license recheck worker...")

		if w.Worker.CronJob != nil {
			w.Worker.CronJob.Stop()
		}
		if w.Worker.Cancel != nil {
			w.Worker.Cancel()
		}
		close(w.Worker.StopChan)
		w.Worker.IsRunning = false

		lm := &LockManager{LockManager: *w.Worker.LockManager}
		if releaseErr := lm.ReleaseLock(w.Worker.OwnerID); releaseErr != nil {
			w.Worker.Logger.Warnf("Failed to release recheck lock: %v", releaseErr)
		}

		w.Worker.Logger.Info("License recheck worker stopped")
	})
	return err
}

func (w *Worker) executeRecheckWithContext() {
	ctx, cancel := context.WithTimeout(w.Worker.Ctx, 15*time.Minute)
	defer cancel()

	w.executeRecheck(ctx)
}

func (w *Worker) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			w.Worker.Logger.Errorf("RunOnce recheck panicked: %v", r)
		}
		w.Stop()
	}()

	ctx, cancel := context.WithTimeout(w.Worker.Ctx, 15*time.Minute)
	defer cancel()

	w.executeRecheck(ctx)
}

// validateWorkerConfig validates the worker configuration
func validateWorkerConfig(config *models.WorkerConfig) error {
	if config == nil {
		return fmt.Errorf("worker config cannot be nil")
	}
	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if config.CronSchedule == "" {
		return fmt.Errorf("cron schedule is required")
	}
	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	return nil
}

// Service wraps the recheck worker for easy integration
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger) (*Service, error) {
	worker, err := NewWorker(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create recheck worker: %w", err)
	}

	return &Service{
		worker: worker,
		logger: log,
	}, nil
}

// StartInBackground starts the recheck worker in the background
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting license recheck worker in background")

	go func() {
		if err := s.worker.Start(); err != nil {
			s.logger.Errorf("License recheck worker failed to start: %v", err)
		}
	}()

	return nil
}

// Stop stops the recheck worker service
func (s *Service) Stop() error {
	s.logger.Info("Stopping license recheck worker service")
	return s.worker.Stop()
}
