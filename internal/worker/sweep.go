package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/bsm/redislock"
	"github.com/rs/zerolog/log"

	"github.com/armbdevelop/reportBot/internal/repository"
)

const (
	sweepLockKey = "lock:retention-sweep"
	sweepLockTTL = 10 * time.Minute
)

// SweepConfig wires the nightly retention sweep.
type SweepConfig struct {
	ShiftRepo     repository.ShiftReportRepository
	WriteoffRepo  repository.WriteoffTransferRepository
	Locker        *redislock.Client
	UploadDir     string
	RetentionDays int
}

// StartRetentionSweep runs the sweep once per day at local midnight. A Redis
// lock keeps concurrent instances from sweeping twice; losers skip the run.
func StartRetentionSweep(ctx context.Context, cfg SweepConfig) {
	go func() {
		timer := time.NewTimer(untilNextMidnight(time.Now()))
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		runSweep(ctx, cfg)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runSweep(ctx, cfg)
			}
		}
	}()
	log.Info().Int("retention_days", cfg.RetentionDays).Msg("retention sweep scheduled")
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

func runSweep(ctx context.Context, cfg SweepConfig) {
	if cfg.Locker != nil {
		lock, err := cfg.Locker.Obtain(ctx, sweepLockKey, sweepLockTTL, nil)
		if err != nil {
			if err == redislock.ErrNotObtained {
				log.Info().Msg("sweep: another instance holds the lock, skipping")
			} else {
				log.Error().Err(err).Msg("sweep: failed to obtain lock")
			}
			return
		}
		defer lock.Release(ctx)
	}

	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	log.Info().Time("cutoff", cutoff).Msg("sweep: starting")

	shifts, err := cfg.ShiftRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("sweep: shift reports delete failed")
	}
	acts, err := cfg.WriteoffRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("sweep: writeoff/transfer delete failed")
	}

	files := sweepFiles(cfg.UploadDir, cutoff)

	log.Info().
		Int64("shift_reports", shifts).
		Int64("writeoff_transfers", acts).
		Int("files", files).
		Msg("sweep: done")
}

// sweepFiles removes uploaded photos older than cutoff by mtime. Rows are the
// source of truth; orphaned files just waste disk, so errors only log.
func sweepFiles(dir string, cutoff time.Time) int {
	if dir == "" {
		return 0
	}
	removed := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("sweep: failed to remove file")
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("sweep: walk failed")
	}
	return removed
}
