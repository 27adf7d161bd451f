// Package contextbuilder derives the minimal routing payload from a
// signal and its read-only profile inputs. Pure, no I/O.
package contextbuilder

import (
	"time"

	profilemodels "haven/internal/profile/models"
	routingmodels "haven/internal/routing/models"
	signalmodels "haven/internal/signal/models"
)

// Build copies exactly the whitelisted fields into a RoutingContext.
// Nothing else present on the inputs is read or forwarded.
//
// ChildAge is computed against the signal's trigger time, not the wall
// clock, so replaying a routing for audit yields the same context.
func Build(
	signal *signalmodels.SafetySignal,
	profile profilemodels.ChildProfileMinimal,
	family profilemodels.FamilyMinimal,
) routingmodels.RoutingContext {
	return routingmodels.RoutingContext{
		SignalID:        signal.ID,
		ChildID:         signal.ChildID,
		FamilyID:        signal.FamilyID,
		ChildAge:        wholeYearsBetween(profile.BirthDate, signal.TriggeredAt),
		FamilyStructure: profile.FamilyStructure,
		Jurisdiction:    family.Jurisdiction,
		Platform:        string(signal.Platform),
		TriggerMethod:   string(signal.TriggerMethod),
		DeviceID:        signal.DeviceID,
		SignalTimestamp: signal.TriggeredAt,
	}
}

// wholeYearsBetween counts completed years from birth to at. A birthday
// falling on the signal day counts as completed.
func wholeYearsBetween(birth, at time.Time) int {
	birth = birth.UTC()
	at = at.UTC()
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
