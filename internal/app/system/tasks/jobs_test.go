package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/tasks"
	"go.uber.org/zap"
)

type fakePurger struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePurger) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func (f *fakePurger) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestSubmissionRetentionJob_Cutoff(t *testing.T) {
	p := &fakePurger{n: 3}
	job := tasks.SubmissionRetentionJob(p, 30*24*time.Hour, zap.NewNop())

	before := time.Now()
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := before.Add(-30 * 24 * time.Hour)
	if d := p.cutoff.Sub(want); d < 0 || d > time.Second {
		t.Errorf("cutoff = %v, want about %v", p.cutoff, want)
	}
	if job.Name != "submission-retention" || job.Interval <= 0 {
		t.Errorf("job = %+v", job)
	}
}

func TestRateLimitCleanupJob_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	job := tasks.RateLimitCleanupJob(&fakePurger{err: boom}, 24*time.Hour, zap.NewNop())
	if err := job.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
}
