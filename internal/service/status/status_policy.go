package status

import (
	"packtrack/internal/model"
	"packtrack/internal/util"
)

// transitions is the closed set of permitted status changes.
// Delivered is terminal.
var transitions = map[model.Status][]model.Status{
	model.StatusRegistered: {model.StatusInTransit, model.StatusDelivered},
	model.StatusInTransit:  {model.StatusDelivered},
	model.StatusDelivered:  {},
}

// CanTransition reports whether the transition table permits from → to
func CanTransition(from, to model.Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Apply validates a requested transition against the table. It returns
// the new status, or an InvalidTransitionError without mutating anything.
func Apply(current, requested model.Status) (model.Status, error) {
	if !CanTransition(current, requested) {
		return current, &model.InvalidTransitionError{From: current, To: requested}
	}
	return requested, nil
}

// Policy evaluates the geographic triggers that fire automatic
// transitions on every ingested location report.
type Policy struct {
	transitRadiusKm   float64
	deliveredRadiusKm float64
}

// NewPolicy creates a policy with the given trigger thresholds
func NewPolicy(transitRadiusKm, deliveredRadiusKm float64) *Policy {
	return &Policy{
		transitRadiusKm:   transitRadiusKm,
		deliveredRadiusKm: deliveredRadiusKm,
	}
}

// Evaluate runs the automatic triggers in order against the package's
// current status and a new report position. A package that just moved to
// in_transit is immediately eligible for the delivered trigger within
// the same evaluation. Unset sender/recipient locations disable the
// corresponding trigger: packages without geocoded endpoints stay
// manually managed.
func (p *Policy) Evaluate(pkg *model.Package, lat, lon float64) (model.Status, bool) {
	current := pkg.Status
	changed := false

	if current == model.StatusRegistered && pkg.Sender.IsSet() {
		if util.DistanceKm(lat, lon, pkg.Sender.Latitude, pkg.Sender.Longitude) > p.transitRadiusKm {
			current = model.StatusInTransit
			changed = true
		}
	}

	if current == model.StatusInTransit && pkg.Recipient.IsSet() {
		if util.DistanceKm(lat, lon, pkg.Recipient.Latitude, pkg.Recipient.Longitude) <= p.deliveredRadiusKm {
			current = model.StatusDelivered
			changed = true
		}
	}

	return current, changed
}
