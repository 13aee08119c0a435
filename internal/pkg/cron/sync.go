package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
)

const SyncRecentDaysJob = "sync_recent_days"

type SyncJobs struct {
	syncService stats.SyncService
	location    *time.Location
	now         func() time.Time
}

func NewSyncJobs(syncService stats.SyncService, location *time.Location) *SyncJobs {
	if location == nil {
		location = time.UTC
	}
	return &SyncJobs{
		syncService: syncService,
		location:    location,
		now:         time.Now,
	}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     SyncRecentDaysJob,
		Interval: interval,
		Fn:       j.SyncRecentDays,
		Timeout:  interval,
	})
}

// SyncRecentDays pulls yesterday and today for every department. Late edits to
// yesterday's roster are common, so it is always re-synced.
func (j *SyncJobs) SyncRecentDays(ctx context.Context) error {
	today := j.now().In(j.location)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	slog.Info("Cron: Starting recent-days schedule sync", "today", today.Format(time.DateOnly))

	failed := 0
	for _, d := range []time.Time{today.AddDate(0, 0, -1), today} {
		result, err := j.syncService.SyncAllDepartments(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to sync %s: %w", d.Format(time.DateOnly), err)
		}
		failed += result.FailedCount
		slog.Info("Cron: Schedule sync finished",
			"date", result.Date,
			"departments", len(result.Departments),
			"processed", result.TotalProcessed,
			"skipped", result.TotalSkipped,
			"failed", result.FailedCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d department syncs failed", failed)
	}
	return nil
}
