// Package validator checks a safety signal before routing. Pure, no I/O.
package validator

import (
	"haven/internal/signal/models"
	dErrors "haven/pkg/domain-errors"
)

// Validate rejects signals missing the fields routing depends on, and
// signals that already crossed the partner boundary. The status check is
// the idempotency gate: at-least-once triggers are expected and a replay
// must come back as already-routed, never as a second delivery.
func Validate(signal *models.SafetySignal) error {
	if signal == nil {
		return dErrors.New(dErrors.CodeValidation, "signal is nil")
	}
	if signal.ChildID.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "signal missing required field: childId")
	}
	if signal.FamilyID.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "signal missing required field: familyId")
	}
	if signal.TriggeredAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "signal missing required field: triggeredAt")
	}
	if signal.Status.Routed() {
		return dErrors.Newf(dErrors.CodeAlreadyRouted, "signal %s already routed (status %s)", signal.ID, signal.Status)
	}
	return nil
}
