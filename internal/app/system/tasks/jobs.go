// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// SubmissionPurger deletes contact submissions created before cutoff.
type SubmissionPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RateLimitPurger deletes form rate limit records idle since cutoff.
type RateLimitPurger interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// SubmissionRetentionJob creates a job that removes contact submissions
// older than retention.
func SubmissionRetentionJob(store SubmissionPurger, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "submission-retention",
		Interval: 6 * time.Hour,
		Timeout:  timeouts.Job,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().Add(-retention)
			deleted, err := store.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("purged old contact submissions",
					zap.Int64("deleted", deleted),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}

// RateLimitCleanupJob creates a job that removes form rate limit records
// untouched for longer than idle. The TTL index does the same on servers
// that honour it; this covers the ones that do not.
func RateLimitCleanupJob(store RateLimitPurger, idle time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "form-rate-limit-cleanup",
		Interval: 1 * time.Hour,
		Timeout:  timeouts.Job,
		Run: func(ctx context.Context) error {
			deleted, err := store.DeleteStale(ctx, time.Now().Add(-idle))
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up stale form rate limits",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}
