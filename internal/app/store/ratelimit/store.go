// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Attempt tracks form submissions for one key (form name + client IP).
type Attempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Key          string             `bson:"key"`           // e.g. "contact:203.0.113.7"
	AttemptCount int                `bson:"attempt_count"` // Submissions in current window
	WindowStart  time.Time          `bson:"window_start"`  // When the current counting window started
	LockedUntil  *time.Time         `bson:"locked_until"`  // Lockout expiry time (nil if not locked)
	LastAttempt  time.Time          `bson:"last_attempt"`  // Most recent attempt (for TTL cleanup)
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Store manages submission counting for the public forms.
type Store struct {
	c               *mongo.Collection
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	now             func() time.Time
}

// New creates a new rate limit Store with the given configuration.
func New(db *mongo.Database, maxAttempts int, window, lockout time.Duration) *Store {
	return &Store{
		c:               db.Collection("form_rate_limits"),
		maxAttempts:     maxAttempts,
		windowDuration:  window,
		lockoutDuration: lockout,
		now:             time.Now,
	}
}

// Key builds the record key for a form and client address.
func Key(form, ip string) string {
	return normalizeKey(form + ":" + ip)
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_formlimit_key"),
		},
		// Records untouched for a day are dropped by the server.
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_formlimit_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// CheckAllowed checks whether key may submit now.
// Returns:
//   - allowed: true if the submission should be processed
//   - remaining: submissions left in the window (-1 if locked)
//   - lockedUntil: when the lockout expires (nil if not locked)
//
// Store errors allow the submission.
func (s *Store) CheckAllowed(ctx context.Context, key string) (allowed bool, remaining int, lockedUntil *time.Time) {
	key = normalizeKey(key)
	now := s.now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&attempt)
	if err != nil {
		return true, s.maxAttempts, nil
	}

	if attempt.LockedUntil != nil && now.Before(*attempt.LockedUntil) {
		return false, -1, attempt.LockedUntil
	}

	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		return true, s.maxAttempts, nil
	}

	remaining = s.maxAttempts - attempt.AttemptCount
	if remaining <= 0 {
		// Lockout already expired but the window has not: wait for the window.
		if attempt.LockedUntil == nil {
			return false, 0, nil
		}
		return true, s.maxAttempts, nil
	}
	return true, remaining, nil
}

// RecordAttempt counts one submission for key.
// Returns:
//   - lockedOut: true if this submission triggered a lockout
//   - lockedUntil: when the lockout expires (nil if not locked)
func (s *Store) RecordAttempt(ctx context.Context, key string) (lockedOut bool, lockedUntil *time.Time) {
	key = normalizeKey(key)
	now := s.now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&attempt)

	if errors.Is(err, mongo.ErrNoDocuments) {
		attempt = Attempt{
			ID:           primitive.NewObjectID(),
			Key:          key,
			AttemptCount: 1,
			WindowStart:  now,
			LastAttempt:  now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if attempt.AttemptCount >= s.maxAttempts {
			lockoutTime := now.Add(s.lockoutDuration)
			attempt.LockedUntil = &lockoutTime
			lockedOut = true
			lockedUntil = &lockoutTime
		}
		_, _ = s.c.InsertOne(ctx, attempt)
		return lockedOut, lockedUntil
	}
	if err != nil {
		return false, nil
	}

	lockExpired := attempt.LockedUntil != nil && !now.Before(*attempt.LockedUntil)
	if lockExpired || now.After(attempt.WindowStart.Add(s.windowDuration)) {
		attempt.AttemptCount = 1
		attempt.WindowStart = now
		attempt.LockedUntil = nil
	} else {
		attempt.AttemptCount++
	}
	attempt.LastAttempt = now
	attempt.UpdatedAt = now

	if attempt.AttemptCount >= s.maxAttempts && attempt.LockedUntil == nil {
		lockoutTime := now.Add(s.lockoutDuration)
		attempt.LockedUntil = &lockoutTime
		lockedOut = true
		lockedUntil = &lockoutTime
	}

	_, _ = s.c.UpdateOne(ctx,
		bson.M{"_id": attempt.ID},
		bson.M{"$set": bson.M{
			"attempt_count": attempt.AttemptCount,
			"window_start":  attempt.WindowStart,
			"locked_until":  attempt.LockedUntil,
			"last_attempt":  attempt.LastAttempt,
			"updated_at":    attempt.UpdatedAt,
		}},
	)

	return lockedOut, lockedUntil
}

// Clear removes the record for key.
func (s *Store) Clear(ctx context.Context, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"key": normalizeKey(key)})
	return err
}

// GetAttempt returns the current record for key, or nil when there is none.
func (s *Store) GetAttempt(ctx context.Context, key string) (*Attempt, error) {
	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"key": normalizeKey(key)}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// DeleteStale removes records whose last attempt is before cutoff and that
// are not locked past it. Returns the number removed.
func (s *Store) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"last_attempt": bson.M{"$lt": cutoff},
		"$or": []bson.M{
			{"locked_until": nil},
			{"locked_until": bson.M{"$lt": cutoff}},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
