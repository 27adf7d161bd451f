// Package audit captures the routing pipeline's audit trail.
//
// Events never carry raw child or family identifiers: subjects are
// SHA-256 hashed before an event leaves the emitting service, so the
// trail is traceable without becoming a second copy of the PII it is
// meant to protect.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// These require tamper-proof storage and long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and
	// operational visibility. These can be sampled with short retention.
	CategoryOperations EventCategory = "operations"
)

// Action names for pipeline events.
type Action string

const (
	ActionSignalReceived  Action = "signal_received"
	ActionSignalRouted    Action = "signal_routed"
	ActionRoutingSkipped  Action = "routing_skipped"
	ActionRoutingFailed   Action = "routing_failed"
	ActionBlackoutStarted Action = "blackout_started"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    Action
	// SignalID is this service's own identifier and carries no family
	// meaning on its own, so it is stored in the clear for correlation.
	SignalID string
	// SubjectHash is the SHA-256 of the child identifier. Never the raw ID.
	SubjectHash string
	Stage       string
	Reason      string
	RequestID   string
}

// HashSubject produces the stored form of a child or family identifier.
func HashSubject(raw string) string {
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher emits audit events for security-relevant operations.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
