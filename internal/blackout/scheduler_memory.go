package blackout

import (
	"context"
	"fmt"
	"sync"
	"time"

	id "haven/pkg/domain"
)

// InMemoryScheduler tracks blackout windows in process memory. Suitable
// for single-instance deployments and tests. Expired windows are
// dropped lazily on read.
type InMemoryScheduler struct {
	mu      sync.Mutex
	windows map[id.SignalID]time.Time
	now     func() time.Time
}

func NewInMemory() *InMemoryScheduler {
	return &InMemoryScheduler{
		windows: make(map[id.SignalID]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the clock. Test hook.
func (b *InMemoryScheduler) WithClock(now func() time.Time) *InMemoryScheduler {
	b.now = now
	return b
}

func (b *InMemoryScheduler) StartBlackout(_ context.Context, signalID id.SignalID, duration time.Duration) error {
	if signalID.IsEmpty() {
		return fmt.Errorf("start blackout: empty signal ID")
	}
	if duration <= 0 {
		return fmt.Errorf("start blackout for %s: non-positive duration %s", signalID, duration)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows[signalID] = b.now().UTC().Add(duration)
	return nil
}

func (b *InMemoryScheduler) IsBlackedOut(_ context.Context, signalID id.SignalID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	endsAt, ok := b.windows[signalID]
	if !ok {
		return false, nil
	}
	if !b.now().Before(endsAt) {
		delete(b.windows, signalID)
		return false, nil
	}
	return true, nil
}

func (b *InMemoryScheduler) BlackoutEndsAt(_ context.Context, signalID id.SignalID) (time.Time, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	endsAt, ok := b.windows[signalID]
	if !ok || !b.now().Before(endsAt) {
		return time.Time{}, nil
	}
	return endsAt, nil
}
