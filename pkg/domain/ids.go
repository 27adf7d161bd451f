// Package domain defines typed identifiers shared across modules.
//
// Signal, child, and family identifiers originate in the upstream device
// and account systems and are treated as opaque strings. Routing IDs are
// minted by this service and are UUIDs. Distinct types keep a ChildID from
// ever being passed where a FamilyID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "haven/pkg/domain-errors"
)

type (
	// SignalID identifies a safety signal raised by a monitored device.
	SignalID string
	// ChildID identifies the monitored child the signal belongs to.
	ChildID string
	// FamilyID identifies the family account the child belongs to.
	FamilyID string
	// DeviceID identifies the triggering device; may be absent.
	DeviceID string
)

func (id SignalID) IsEmpty() bool { return strings.TrimSpace(string(id)) == "" }
func (id ChildID) IsEmpty() bool  { return strings.TrimSpace(string(id)) == "" }
func (id FamilyID) IsEmpty() bool { return strings.TrimSpace(string(id)) == "" }
func (id DeviceID) IsEmpty() bool { return strings.TrimSpace(string(id)) == "" }

func (id SignalID) String() string { return string(id) }
func (id ChildID) String() string  { return string(id) }
func (id FamilyID) String() string { return string(id) }
func (id DeviceID) String() string { return string(id) }

// RoutingID identifies one accepted routing of a signal to the partner.
type RoutingID uuid.UUID

// NewRoutingID mints a fresh routing identifier.
func NewRoutingID() RoutingID {
	return RoutingID(uuid.New())
}

// ParseRoutingID parses and validates a routing identifier. Empty, nil,
// and malformed values are rejected at the trust boundary.
func ParseRoutingID(s string) (RoutingID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return RoutingID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "routing id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return RoutingID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "routing id must not be nil")
	}
	return RoutingID(parsed), nil
}

func (id RoutingID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RoutingID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the canonical UUID string form, so JSON encoding
// produces a string rather than a byte array.
func (id RoutingID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RoutingID) UnmarshalText(data []byte) error {
	var raw uuid.UUID
	if err := raw.UnmarshalText(data); err != nil {
		return err
	}
	*id = RoutingID(raw)
	return nil
}
