// Package store provides SignalStore implementations.
package store

import (
	"context"
	"fmt"
	"sync"

	"haven/internal/signal/models"
	id "haven/pkg/domain"
	"haven/pkg/platform/sentinel"
)

// InMemorySignalStore holds signals in memory. Used in tests and as the
// default backend when Postgres is not configured.
type InMemorySignalStore struct {
	mu      sync.RWMutex
	signals map[id.SignalID]models.SafetySignal
}

func NewInMemory() *InMemorySignalStore {
	return &InMemorySignalStore{signals: make(map[id.SignalID]models.SafetySignal)}
}

// Put inserts or replaces a signal. The device trigger path uses this.
func (s *InMemorySignalStore) Put(_ context.Context, signal models.SafetySignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.signals[signal.ID]; ok {
		return fmt.Errorf("signal %s: %w", signal.ID, sentinel.ErrConflict)
	}
	s.signals[signal.ID] = signal
	return nil
}

func (s *InMemorySignalStore) GetSignal(_ context.Context, signalID id.SignalID) (*models.SafetySignal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	signal, ok := s.signals[signalID]
	if !ok {
		return nil, fmt.Errorf("signal %s: %w", signalID, sentinel.ErrNotFound)
	}
	copied := signal
	return &copied, nil
}

// UpdateSignalStatus advances the status. Backward transitions are
// refused so the forward-only lifecycle holds even under misuse.
func (s *InMemorySignalStore) UpdateSignalStatus(_ context.Context, signalID id.SignalID, status models.SignalStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("status %q: %w", status, sentinel.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	signal, ok := s.signals[signalID]
	if !ok {
		return fmt.Errorf("signal %s: %w", signalID, sentinel.ErrNotFound)
	}
	if statusRank(status) < statusRank(signal.Status) {
		return fmt.Errorf("cannot move %s from %s to %s: %w", signalID, signal.Status, status, sentinel.ErrInvalidState)
	}
	signal.Status = status
	s.signals[signalID] = signal
	return nil
}

func statusRank(status models.SignalStatus) int {
	switch status {
	case models.StatusQueued, models.StatusPending:
		return 0
	case models.StatusSent:
		return 1
	case models.StatusDelivered:
		return 2
	case models.StatusAcknowledged:
		return 3
	}
	return -1
}
