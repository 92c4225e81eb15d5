package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithTimeout_LogsDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.New(core), "site context")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["operation"]; got != "site context" {
		t.Errorf("operation = %v, want %q", got, "site context")
	}
}

func TestWithTimeout_QuietOnCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Minute, zap.New(core), "site context")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("logged %d entries, want 0", logs.Len())
	}
}

func TestWithTimeout_NilLogger(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Nanosecond, nil, "x")
	<-ctx.Done()
	cancel()
}
