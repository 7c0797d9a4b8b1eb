package models

import (
	"context"
	"sync"
	"time"

	"medstaff-backend/utils/logger"

	"github.com/robfig/cron"
)

// Worker manages the scheduled license re-verification job
type Worker struct {
	Config      *Config
	Logger      logger.Logger
	CronJob     *cron.Cron
	LockManager *LockManager

	// Worker configuration
	WorkerConfig *WorkerConfig
	OwnerID      string
	IsRunning    bool
	StopChan     chan struct{}

	// Synchronization and state management
	Mu       sync.RWMutex
	Ctx      context.Context
	Cancel   context.CancelFunc
	StopOnce sync.Once
}

// LockManager handles distributed locking for the recheck job
type LockManager struct {
	LockFilePath string
	LockTimeout  time.Duration
	Environment  string
}

// WorkerConfig holds configuration for the recheck worker
type WorkerConfig struct {
	// Cron schedule
	CronSchedule string `json:"cron_schedule"`

	// Lock settings
	LockTimeout       time.Duration `json:"lock_timeout"`
	LockRetryInterval time.Duration `json:"lock_retry_interval"`

	// Environment settings
	Environment string `json:"environment"`

	// Paths
	LockFilePath string `json:"lock_file_path"`

	// Feature flags
	DryRun  bool `json:"dry_run"`
	RunOnce bool `json:"run_once"`
}

// LockInfo represents distributed lock information
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// RecheckResult summarizes one pass of the license recheck job
type RecheckResult struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	Checked   int `json:"checked"`
	Verified  int `json:"verified"`
	Failed    int `json:"failed"`
	Suspended int `json:"suspended"`

	ErrorMessage string `json:"error_message,omitempty"`
}
