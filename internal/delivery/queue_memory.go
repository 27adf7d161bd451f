package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"haven/internal/crypto/envelope"
	id "haven/pkg/domain"
)

// QueuedRouting is one accepted delivery held by the in-memory queue.
type QueuedRouting struct {
	RoutingID id.RoutingID
	SignalID  id.SignalID
	Sealed    *envelope.EncryptedPayload
	QueuedAt  time.Time
}

// InMemoryQueue buffers sealed envelopes in process memory. Suitable
// for tests and single-instance deployments without a broker.
type InMemoryQueue struct {
	mu      sync.Mutex
	entries []QueuedRouting
}

func NewInMemory() *InMemoryQueue {
	return &InMemoryQueue{}
}

func (q *InMemoryQueue) QueueRouting(_ context.Context, signalID id.SignalID, sealed *envelope.EncryptedPayload) (id.RoutingID, error) {
	if sealed == nil {
		return id.RoutingID{}, fmt.Errorf("queue routing for %s: nil envelope", signalID)
	}
	routingID := id.NewRoutingID()
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, QueuedRouting{
		RoutingID: routingID,
		SignalID:  signalID,
		Sealed:    sealed,
		QueuedAt:  time.Now().UTC(),
	})
	return routingID, nil
}

// Entries returns a snapshot of everything queued so far.
func (q *InMemoryQueue) Entries() []QueuedRouting {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]QueuedRouting, len(q.entries))
	copy(snapshot, q.entries)
	return snapshot
}
