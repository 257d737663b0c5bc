package status

import (
	"errors"
	"testing"

	"packtrack/internal/model"
)

func TestApplyValidTransitions(t *testing.T) {
	valid := []struct {
		from, to model.Status
	}{
		{model.StatusRegistered, model.StatusInTransit},
		{model.StatusRegistered, model.StatusDelivered},
		{model.StatusInTransit, model.StatusDelivered},
	}

	for _, tc := range valid {
		got, err := Apply(tc.from, tc.to)
		if err != nil {
			t.Errorf("Apply(%s, %s) error: %v", tc.from, tc.to, err)
		}
		if got != tc.to {
			t.Errorf("Apply(%s, %s) = %s, want %s", tc.from, tc.to, got, tc.to)
		}
	}
}

func TestApplyInvalidTransitions(t *testing.T) {
	all := []model.Status{model.StatusRegistered, model.StatusInTransit, model.StatusDelivered}

	for _, from := range all {
		for _, to := range all {
			if CanTransition(from, to) {
				continue
			}

			got, err := Apply(from, to)
			if err == nil {
				t.Errorf("Apply(%s, %s) succeeded, want InvalidTransitionError", from, to)
				continue
			}

			var invalid *model.InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("Apply(%s, %s) error type %T, want InvalidTransitionError", from, to, err)
				continue
			}
			if invalid.From != from || invalid.To != to {
				t.Errorf("error carries %s→%s, want %s→%s", invalid.From, invalid.To, from, to)
			}
			if got != from {
				t.Errorf("Apply(%s, %s) mutated status to %s", from, to, got)
			}
		}
	}
}

func TestDeliveredIsTerminal(t *testing.T) {
	for _, to := range []model.Status{model.StatusRegistered, model.StatusInTransit, model.StatusDelivered} {
		if CanTransition(model.StatusDelivered, to) {
			t.Errorf("delivered → %s permitted, want terminal", to)
		}
	}
}

func testPackage(status model.Status) *model.Package {
	return &model.Package{
		TrackingID: "PKG-TEST",
		Status:     status,
		Sender: model.Contact{
			Location: model.Location{Latitude: 28.61, Longitude: 77.21},
		},
		Recipient: model.Contact{
			Location: model.Location{Latitude: 28.70, Longitude: 77.10},
		},
	}
}

func TestEvaluateLeavesSender(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)
	pkg := testPackage(model.StatusRegistered)

	// ~0.6 km north of the sender
	got, changed := policy.Evaluate(pkg, 28.6154, 77.21)
	if !changed || got != model.StatusInTransit {
		t.Errorf("Evaluate = (%s, %v), want (in_transit, true)", got, changed)
	}
}

func TestEvaluateNearSenderStaysRegistered(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)
	pkg := testPackage(model.StatusRegistered)

	// ~0.1 km from the sender
	got, changed := policy.Evaluate(pkg, 28.6109, 77.21)
	if changed || got != model.StatusRegistered {
		t.Errorf("Evaluate = (%s, %v), want (registered, false)", got, changed)
	}
}

func TestEvaluateReachesRecipient(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)
	pkg := testPackage(model.StatusInTransit)

	// ~0.08 km from the recipient
	got, changed := policy.Evaluate(pkg, 28.7007, 77.10)
	if !changed || got != model.StatusDelivered {
		t.Errorf("Evaluate = (%s, %v), want (delivered, true)", got, changed)
	}
}

func TestEvaluateChainsWithinOneReport(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)
	pkg := testPackage(model.StatusRegistered)

	// Far from the sender and right at the recipient: both triggers
	// fire in order within a single evaluation
	got, changed := policy.Evaluate(pkg, 28.7007, 77.10)
	if !changed || got != model.StatusDelivered {
		t.Errorf("Evaluate = (%s, %v), want (delivered, true)", got, changed)
	}
}

func TestEvaluateSentinelEndpointsDisableTriggers(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)

	pkg := testPackage(model.StatusRegistered)
	pkg.Sender.Location = model.Location{}
	if got, changed := policy.Evaluate(pkg, 28.6154, 77.21); changed || got != model.StatusRegistered {
		t.Errorf("unset sender: Evaluate = (%s, %v), want no change", got, changed)
	}

	pkg = testPackage(model.StatusInTransit)
	pkg.Recipient.Location = model.Location{}
	if got, changed := policy.Evaluate(pkg, 28.7007, 77.10); changed || got != model.StatusInTransit {
		t.Errorf("unset recipient: Evaluate = (%s, %v), want no change", got, changed)
	}

	// A single zero coordinate is just as unset as (0, 0); a far-away
	// report must not trip the leave-sender trigger
	pkg = testPackage(model.StatusRegistered)
	pkg.Sender.Location = model.Location{Latitude: 28.61}
	if got, changed := policy.Evaluate(pkg, 28.6154, 77.21); changed || got != model.StatusRegistered {
		t.Errorf("half-set sender: Evaluate = (%s, %v), want no change", got, changed)
	}
}

func TestEvaluateDeliveredStaysDelivered(t *testing.T) {
	policy := NewPolicy(0.5, 0.1)
	pkg := testPackage(model.StatusDelivered)

	if got, changed := policy.Evaluate(pkg, 28.6154, 77.21); changed || got != model.StatusDelivered {
		t.Errorf("Evaluate = (%s, %v), want (delivered, false)", got, changed)
	}
}
