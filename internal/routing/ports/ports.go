// Package ports defines the collaborator interfaces the routing
// orchestrator depends on. Interfaces live here so adapters and mocks
// share one definition.
package ports

import (
	"context"
	"time"

	"haven/internal/crypto/envelope"
	profilemodels "haven/internal/profile/models"
	signalmodels "haven/internal/signal/models"
	id "haven/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

// SignalStore reads and advances safety signals.
type SignalStore interface {
	// GetSignal loads a signal by ID. Returns sentinel.ErrNotFound
	// (wrapped) when absent.
	GetSignal(ctx context.Context, signalID id.SignalID) (*signalmodels.SafetySignal, error)

	// UpdateSignalStatus advances a signal's status. Implementations must
	// refuse backward transitions.
	UpdateSignalStatus(ctx context.Context, signalID id.SignalID, status signalmodels.SignalStatus) error
}

// ProfileStore fetches the minimal child and family projections.
type ProfileStore interface {
	GetChildProfile(ctx context.Context, childID id.ChildID) (profilemodels.ChildProfileMinimal, error)

	GetFamilyData(ctx context.Context, familyID id.FamilyID) (profilemodels.FamilyMinimal, error)
}

// DeliveryQueue hands a sealed envelope to the partner delivery channel.
// The orchestrator encrypts before queueing, so no plaintext routing
// context ever crosses this boundary.
type DeliveryQueue interface {
	QueueRouting(ctx context.Context, signalID id.SignalID, sealed *envelope.EncryptedPayload) (id.RoutingID, error)
}

// BlackoutScheduler starts the family-visibility blackout window.
type BlackoutScheduler interface {
	StartBlackout(ctx context.Context, signalID id.SignalID, duration time.Duration) error
}
