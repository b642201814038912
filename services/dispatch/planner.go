// Package dispatch decides which resources to send for a finalized incident.
package dispatch

import (
	"math/rand"

	"rescuehub/models"
)

// PlanFunc is the planner contract consumed by the triage handlers. Tests
// substitute a counting implementation; production code uses Plan.
type PlanFunc func(kind models.IncidentKind, address string, injuries bool) models.DispatchResult

const (
	etaMinMinutes = 3
	etaMaxMinutes = 8
)

// baseCrew is attached to every dispatch regardless of incident kind.
var baseCrew = []string{"dispatcher", "communication center"}

// Plan returns the resource set and ETA for the given incident kind. It has
// no failure mode: an unrecognized kind falls back to a generic emergency
// unit, and the address is accepted as opaque text. The ETA is a placeholder
// drawn uniformly from [3,8] minutes until a real routing estimate exists.
func Plan(kind models.IncidentKind, address string, injuries bool) models.DispatchResult {
	var units []string
	switch kind {
	case models.IncidentFire:
		units = []string{"firetruck", "firefighter"}
	case models.IncidentMedical:
		units = []string{"ambulance", "doctors"}
	case models.IncidentBoth:
		units = []string{"firetruck", "ambulance", "doctors", "firefighter"}
	default:
		units = []string{"emergency unit"}
	}

	resources := make([]string, 0, len(baseCrew)+len(units))
	resources = append(resources, baseCrew...)
	resources = append(resources, units...)

	return models.DispatchResult{
		Resources:  resources,
		ETAMinutes: etaMinMinutes + rand.Intn(etaMaxMinutes-etaMinMinutes+1),
	}
}
