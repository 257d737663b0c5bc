package model

import "testing"

func TestLocationIsSet(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		want bool
	}{
		{"both set", Location{Latitude: 28.61, Longitude: 77.21}, true},
		{"both zero", Location{}, false},
		{"zero latitude", Location{Longitude: 77.21}, false},
		{"zero longitude", Location{Latitude: 28.61}, false},
	}

	for _, tc := range cases {
		if got := tc.loc.IsSet(); got != tc.want {
			t.Errorf("%s: IsSet() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusRegistered, StatusInTransit, StatusDelivered} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false, want true", s)
		}
	}
	if Status("lost").Valid() {
		t.Error("Valid(lost) = true, want false")
	}
}
