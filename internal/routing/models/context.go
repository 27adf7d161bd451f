// Package models defines the routing context and routing results.
package models

import (
	"time"

	profilemodels "haven/internal/profile/models"
	id "haven/pkg/domain"
)

// RoutingContext is the privacy-scrubbed payload handed to the envelope
// engine for partner delivery. The type is the whitelist: it structurally
// cannot carry parent contact information, screenshots, or activity data,
// and no field may be added here without a privacy review.
//
// It is ephemeral. After encryption it must never be persisted in
// plaintext.
type RoutingContext struct {
	SignalID        id.SignalID                   `json:"signalId"`
	ChildID         id.ChildID                    `json:"childId"`
	FamilyID        id.FamilyID                   `json:"familyId"`
	ChildAge        int                           `json:"childAge"`
	FamilyStructure profilemodels.FamilyStructure `json:"familyStructure"`
	Jurisdiction    string                        `json:"jurisdiction"`
	Platform        string                        `json:"platform"`
	TriggerMethod   string                        `json:"triggerMethod"`
	DeviceID        *id.DeviceID                  `json:"deviceId"`
	SignalTimestamp time.Time                     `json:"signalTimestamp"`
}

// RoutingResult reports the outcome of one routing invocation.
type RoutingResult struct {
	Success   bool         `json:"success"`
	Skipped   bool         `json:"skipped,omitempty"`
	RoutingID id.RoutingID `json:"routingId,omitempty"`
}
