// internal/app/system/throttle/throttle.go
package throttle

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config sets the token bucket for each key.
type Config struct {
	Rate            rate.Limit    // tokens per second
	Burst           int           // bucket size
	IdleTTL         time.Duration // entries unused this long are dropped
	CleanupInterval time.Duration
}

// PerMinute returns a Config allowing n requests per minute with a burst of n.
func PerMinute(n int) Config {
	if n <= 0 {
		n = 1
	}
	return Config{
		Rate:            rate.Limit(float64(n) / 60.0),
		Burst:           n,
		IdleTTL:         10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter rate-limits by key (typically the client IP) in memory.
type Limiter struct {
	cfg Config

	mu      sync.RWMutex
	entries map[string]*entry

	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// New creates a Limiter and starts its background cleanup.
func New(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		entries: make(map[string]*entry),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
	if cfg.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Stop ends the background cleanup. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	return l.get(key).AllowN(l.now(), 1)
}

// RetryAfter is the whole number of seconds until one token is available,
// at least 1.
func (l *Limiter) RetryAfter() int {
	if l.cfg.Rate <= 0 {
		return 60
	}
	secs := int(math.Ceil(1.0/float64(l.cfg.Rate) - 1e-9))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func (l *Limiter) get(key string) *rate.Limiter {
	now := l.now()

	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if ok {
		l.mu.Lock()
		e.lastAccess = now
		l.mu.Unlock()
		return e.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another goroutine may have created it between the locks.
	if e, ok := l.entries[key]; ok {
		e.lastAccess = now
		return e.limiter
	}
	e = &entry{limiter: rate.NewLimiter(l.cfg.Rate, l.cfg.Burst), lastAccess: now}
	l.entries[key] = e
	return e.limiter
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	cutoff := l.now().Add(-l.cfg.IdleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.entries {
		if e.lastAccess.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
