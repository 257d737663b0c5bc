package util

import "testing"

func TestDistanceKmIdenticalPoints(t *testing.T) {
	coords := [][2]float64{
		{0, 0},
		{28.6139, 77.2090},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
	}

	for _, c := range coords {
		if d := DistanceKm(c[0], c[1], c[0], c[1]); d != 0 {
			t.Errorf("DistanceKm(%v, %v, same) = %v, want 0", c[0], c[1], d)
		}
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	d1 := DistanceKm(28.6139, 77.2090, 28.4089, 77.0418)
	d2 := DistanceKm(28.4089, 77.0418, 28.6139, 77.2090)

	if d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKmKnownFixture(t *testing.T) {
	// New Delhi to Gurugram, roughly 29 km apart
	d := DistanceKm(28.6139, 77.2090, 28.4089, 77.0418)

	if d < 25 || d > 40 {
		t.Errorf("DistanceKm = %v, want between 25 and 40", d)
	}
}

func TestDistanceKmShortHop(t *testing.T) {
	// ~0.6 km north along a meridian
	d := DistanceKm(28.61, 77.21, 28.6154, 77.21)

	if d < 0.55 || d > 0.65 {
		t.Errorf("DistanceKm = %v, want ~0.6", d)
	}
}
