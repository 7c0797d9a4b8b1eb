package worker

import (
	"context"
	"time"
)

// executeRecheck runs one pass of the license re-verification job. The
// file lock keeps concurrent instances from double-checking the same
// accounts.
func (w *Worker) executeRecheck(ctx context.Context) {
	log := w.Worker.Logger

	lm := &LockManager{LockManager: *w.Worker.LockManager}
	if err := lm.CleanupExpiredLocks(); err != nil {
		log.Warnf("Failed to clean up expired locks: %v", err)
	}

	lock, err := lm.AcquireLock(w.Worker.OwnerID)
	if err != nil {
		log.Infof("Skipping recheck run, lock not acquired: %v", err)
		return
	}
	defer func() {
		if err := lm.ReleaseLock(w.Worker.OwnerID); err != nil {
			log.Warnf("Failed to release recheck lock: %v", err)
		}
	}()
	log.Infof("Acquired recheck lock %s, expires %s", lock.ID, lock.ExpiresAt.Format(time.RFC3339))

	start := time.Now()
	professionals, err := w.profRepo.ListAutoVerifiable(ctx)
	if err != nil {
		log.Errorf("Failed to list auto-verifiable professionals: %v", err)
		return
	}
	log.Infof("Rechecking licenses for %d professionals", len(professionals))

	var checked, verified, failed, suspended int
	for _, professional := range professionals {
		select {
		case <-ctx.Done():
			log.Warn("Recheck run cancelled before completion")
			return
		default:
		}

		if w.Worker.WorkerConfig.DryRun {
			log.Infof("[dry-run] would recheck licenses for %s", professional.ID)
			continue
		}

		result, err := w.briefcaseService.RecheckLicenses(ctx, professional)
		if err != nil {
			log.Errorf("Recheck failed for professional %s: %v", professional.ID, err)
			failed++
			continue
		}

		checked += result.Checked
		verified += result.Verified
		failed += result.Failed
		suspended += result.Suspended
	}

	log.Infof("Recheck run completed in %s: checked=%d verified=%d failed=%d suspended=%d",
		time.Since(start).Round(time.Millisecond), checked, verified, failed, suspended)
}
