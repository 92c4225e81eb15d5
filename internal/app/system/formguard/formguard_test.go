package formguard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLimiter struct {
	max  int
	hits map[string]int
}

func (f *fakeLimiter) CheckAllowed(_ context.Context, key string) (bool, int, *time.Time) {
	n := f.hits[key]
	if n >= f.max {
		until := time.Now().Add(time.Minute)
		return false, 0, &until
	}
	return true, f.max - n, nil
}

func (f *fakeLimiter) RecordAttempt(_ context.Context, key string) (bool, *time.Time) {
	f.hits[key]++
	if f.hits[key] >= f.max {
		until := time.Now().Add(time.Minute)
		return true, &until
	}
	return false, nil
}

func TestGuard_NilAdmitsEverything(t *testing.T) {
	var g *Guard
	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	if !g.Allow(r, "contact") {
		t.Error("nil guard rejected a submission")
	}
	g.Record(r, "contact")

	if !New(nil, nil).Allow(r, "contact") {
		t.Error("guard without limiter rejected a submission")
	}
}

func TestGuard_LocksOutPerFormAndAddress(t *testing.T) {
	lim := &fakeLimiter{max: 2, hits: map[string]int{}}
	g := New(lim, nil)

	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	r.RemoteAddr = "203.0.113.7:5555"

	for i := 0; i < 2; i++ {
		if !g.Allow(r, "contact") {
			t.Fatalf("attempt %d rejected, want allowed", i+1)
		}
		g.Record(r, "contact")
	}
	if g.Allow(r, "contact") {
		t.Error("third contact attempt allowed, want throttled")
	}
	if !g.Allow(r, "business_quote") {
		t.Error("other form throttled, want allowed")
	}

	other := httptest.NewRequest(http.MethodPost, "/contact", nil)
	other.RemoteAddr = "198.51.100.2:5555"
	if !g.Allow(other, "contact") {
		t.Error("other address throttled, want allowed")
	}
}
