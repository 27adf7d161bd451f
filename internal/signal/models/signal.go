// Package models defines the safety signal and its enumerations.
package models

import (
	"time"

	id "haven/pkg/domain"
)

// SignalStatus tracks a signal through its forward-only lifecycle.
// Transitions only ever move right: queued/pending -> sent -> delivered
// -> acknowledged. A signal at or past sent must never be routed again.
type SignalStatus string

const (
	StatusQueued       SignalStatus = "queued"
	StatusPending      SignalStatus = "pending"
	StatusSent         SignalStatus = "sent"
	StatusDelivered    SignalStatus = "delivered"
	StatusAcknowledged SignalStatus = "acknowledged"
)

func (s SignalStatus) IsValid() bool {
	switch s {
	case StatusQueued, StatusPending, StatusSent, StatusDelivered, StatusAcknowledged:
		return true
	}
	return false
}

// Routed reports whether the signal has already crossed the partner
// boundary. This is the sole idempotency gate for routing.
func (s SignalStatus) Routed() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusAcknowledged:
		return true
	}
	return false
}

// TriggerMethod is the silent gesture the child used to raise the signal.
type TriggerMethod string

const (
	TriggerLogoTap          TriggerMethod = "logo_tap"
	TriggerKeyboardShortcut TriggerMethod = "keyboard_shortcut"
	TriggerSwipePattern     TriggerMethod = "swipe_pattern"
)

func (t TriggerMethod) IsValid() bool {
	switch t {
	case TriggerLogoTap, TriggerKeyboardShortcut, TriggerSwipePattern:
		return true
	}
	return false
}

// Platform identifies the surface the trigger came from.
type Platform string

const (
	PlatformWeb             Platform = "web"
	PlatformChromeExtension Platform = "chrome_extension"
	PlatformAndroid         Platform = "android"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformWeb, PlatformChromeExtension, PlatformAndroid:
		return true
	}
	return false
}

// SafetySignal is a distress trigger raised by a monitored child. Created
// by the device trigger path; only the routing orchestrator mutates
// Status and DeliveredAt afterwards. Never deleted by this subsystem.
type SafetySignal struct {
	ID            id.SignalID   `json:"id"`
	ChildID       id.ChildID    `json:"childId"`
	FamilyID      id.FamilyID   `json:"familyId"`
	TriggeredAt   time.Time     `json:"triggeredAt"`
	Status        SignalStatus  `json:"status"`
	TriggerMethod TriggerMethod `json:"triggerMethod"`
	Platform      Platform      `json:"platform"`
	DeviceID      *id.DeviceID  `json:"deviceId"`
	OfflineQueued bool          `json:"offlineQueued"`
	DeliveredAt   *time.Time    `json:"deliveredAt"`
}
