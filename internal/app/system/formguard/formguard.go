// Package formguard throttles public form submissions per client address.
//
// A Guard wraps the Mongo-backed ratelimit store: Allow is checked before a
// submission is processed and Record counts it afterwards. A nil Guard, or
// one built without a limiter, admits everything.
package formguard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/store/ratelimit"
	"github.com/dalemusser/rightonrepair/internal/app/system/network"
	"go.uber.org/zap"
)

// ThrottledMessage is flashed when a visitor is locked out.
const ThrottledMessage = "Too many submissions from your connection. Please try again later or call us directly."

// Limiter is the subset of the ratelimit store the guard needs.
type Limiter interface {
	CheckAllowed(ctx context.Context, key string) (allowed bool, remaining int, lockedUntil *time.Time)
	RecordAttempt(ctx context.Context, key string) (lockedOut bool, lockedUntil *time.Time)
}

// Guard admits or rejects form submissions.
type Guard struct {
	limiter Limiter
	logger  *zap.Logger
}

// New creates a Guard. limiter may be nil to disable throttling.
func New(limiter Limiter, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{limiter: limiter, logger: logger}
}

// Allow reports whether the client behind r may submit form.
func (g *Guard) Allow(r *http.Request, form string) bool {
	if g == nil || g.limiter == nil {
		return true
	}
	ip := network.GetClientIP(r)
	allowed, _, lockedUntil := g.limiter.CheckAllowed(r.Context(), ratelimit.Key(form, ip))
	if !allowed {
		fields := []zap.Field{zap.String("form", form), zap.String("ip", ip)}
		if lockedUntil != nil {
			fields = append(fields, zap.Time("locked_until", *lockedUntil))
		}
		g.logger.Info("form submission throttled", fields...)
	}
	return allowed
}

// Record counts one submission of form by the client behind r.
func (g *Guard) Record(r *http.Request, form string) {
	if g == nil || g.limiter == nil {
		return
	}
	ip := network.GetClientIP(r)
	if locked, until := g.limiter.RecordAttempt(r.Context(), ratelimit.Key(form, ip)); locked && until != nil {
		g.logger.Info("form client locked out",
			zap.String("form", form),
			zap.String("ip", ip),
			zap.Time("locked_until", *until))
	}
}
