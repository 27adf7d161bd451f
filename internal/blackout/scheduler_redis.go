// Package blackout suppresses family-facing visibility of a signal for
// a fixed window after it is routed to the crisis partner, so a
// potentially abusive guardian is not tipped off while responders act.
package blackout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "haven/pkg/domain"
)

const (
	// Redis key prefix for active blackout windows
	blackoutKeyPrefix = "blackout:signal:"
)

// RedisScheduler is a Redis-backed blackout window store. This is the
// production-recommended implementation for distributed deployments
// where every instance must observe the same windows. Expiry rides on
// Redis TTLs, so a window ends without any sweeper process.
type RedisScheduler struct {
	client *redis.Client
}

// NewRedisScheduler constructs a Redis-backed blackout scheduler.
func NewRedisScheduler(client *redis.Client) *RedisScheduler {
	return &RedisScheduler{client: client}
}

// StartBlackout opens a blackout window for the signal. Uses Redis
// set-with-expiry so the window is atomic and self-clearing. Restarting
// an already-open window extends it, which is the safe direction.
func (b *RedisScheduler) StartBlackout(ctx context.Context, signalID id.SignalID, duration time.Duration) error {
	if signalID.IsEmpty() {
		return fmt.Errorf("start blackout: empty signal ID")
	}
	if duration <= 0 {
		return fmt.Errorf("start blackout for %s: non-positive duration %s", signalID, duration)
	}
	key := blackoutKeyPrefix + string(signalID)
	expiry := time.Now().UTC().Add(duration).Format(time.RFC3339)
	if err := b.client.Set(ctx, key, expiry, duration).Err(); err != nil {
		return fmt.Errorf("start blackout for %s: %w", signalID, err)
	}
	return nil
}

// IsBlackedOut reports whether the signal is inside an active window.
// Returns false when the key is absent (never started or expired).
func (b *RedisScheduler) IsBlackedOut(ctx context.Context, signalID id.SignalID) (bool, error) {
	if signalID.IsEmpty() {
		return false, nil
	}
	key := blackoutKeyPrefix + string(signalID)
	_, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blackout check for %s: %w", signalID, err)
	}
	return true, nil
}

// BlackoutEndsAt returns the scheduled end of the active window, or the
// zero time when no window is open.
func (b *RedisScheduler) BlackoutEndsAt(ctx context.Context, signalID id.SignalID) (time.Time, error) {
	key := blackoutKeyPrefix + string(signalID)
	value, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("blackout lookup for %s: %w", signalID, err)
	}
	endsAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("blackout lookup for %s: malformed expiry %q", signalID, value)
	}
	return endsAt, nil
}
