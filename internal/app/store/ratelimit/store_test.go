package ratelimit

import (
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/testutil"
)

func TestKey(t *testing.T) {
	if got := Key("Contact", "2001:DB8::1"); got != "contact:2001:db8::1" {
		t.Errorf("Key() = %q, want contact:2001:db8::1", got)
	}
	if got := Key("contact", "10.0.0.1"); got != "contact:10.0.0.1" {
		t.Errorf("Key() = %q, want contact:10.0.0.1", got)
	}
}

func TestStore_EnsureIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes() second call error = %v", err)
	}
}

func TestStore_CheckAllowed_NoRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, Key("contact", "10.0.0.1"))
	if !allowed {
		t.Error("CheckAllowed() should allow a new key")
	}
	if remaining != 5 {
		t.Errorf("CheckAllowed() remaining = %d, want 5", remaining)
	}
	if lockedUntil != nil {
		t.Error("CheckAllowed() lockedUntil should be nil for a new key")
	}
}

func TestStore_RecordAttempt_LocksAtLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	key := Key("contact", "10.0.0.2")
	for i := 1; i < 3; i++ {
		if locked, _ := store.RecordAttempt(ctx, key); locked {
			t.Fatalf("RecordAttempt() #%d locked early", i)
		}
	}
	allowed, remaining, _ := store.CheckAllowed(ctx, key)
	if !allowed || remaining != 1 {
		t.Errorf("CheckAllowed() = %v, %d; want true, 1", allowed, remaining)
	}

	locked, until := store.RecordAttempt(ctx, key)
	if !locked || until == nil {
		t.Fatal("third RecordAttempt() should lock")
	}
	allowed, remaining, _ = store.CheckAllowed(ctx, key)
	if allowed || remaining != -1 {
		t.Errorf("CheckAllowed() after lock = %v, %d; want false, -1", allowed, remaining)
	}

	// Other forms from the same address are counted separately.
	if allowed, _, _ := store.CheckAllowed(ctx, Key("personal_quote", "10.0.0.2")); !allowed {
		t.Error("a different form should not share the lock")
	}
}

func TestStore_RecordAttempt_WindowExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, time.Minute, 5*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now()
	store.now = func() time.Time { return base }
	key := Key("contact", "10.0.0.3")
	store.RecordAttempt(ctx, key)
	store.RecordAttempt(ctx, key)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, remaining, _ := store.CheckAllowed(ctx, key)
	if remaining != 3 {
		t.Errorf("remaining after window = %d, want 3", remaining)
	}
	store.RecordAttempt(ctx, key)
	a, err := store.GetAttempt(ctx, key)
	if err != nil || a == nil {
		t.Fatalf("GetAttempt() = %v, %v", a, err)
	}
	if a.AttemptCount != 1 {
		t.Errorf("AttemptCount = %d, want 1 after the window reset", a.AttemptCount)
	}
}

func TestStore_ClearAndDeleteStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now()
	store.now = func() time.Time { return base.Add(-48 * time.Hour) }
	store.RecordAttempt(ctx, Key("contact", "old"))
	store.now = func() time.Time { return base }
	store.RecordAttempt(ctx, Key("contact", "fresh"))
	store.RecordAttempt(ctx, Key("contact", "gone"))

	if err := store.Clear(ctx, Key("contact", "gone")); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if a, _ := store.GetAttempt(ctx, Key("contact", "gone")); a != nil {
		t.Error("Clear() left the record")
	}

	n, err := store.DeleteStale(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteStale() removed %d, want 1", n)
	}
	if a, _ := store.GetAttempt(ctx, Key("contact", "fresh")); a == nil {
		t.Error("DeleteStale() removed a fresh record")
	}
}
