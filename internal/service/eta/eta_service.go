package eta

import (
	"fmt"
	"time"

	"packtrack/internal/model"
	"packtrack/internal/util"
)

const (
	// DefaultSpeedKmh is the heuristic courier speed when none is configured
	DefaultSpeedKmh = 30.0

	// arrivedRadiusKm is the distance under which the package counts as
	// arriving imminently rather than getting a travel-time estimate
	arrivedRadiusKm = 0.1

	// imminentWindow is the estimate returned for imminent arrivals
	imminentWindow = 5 * time.Minute

	// minBufferHours is the floor for the safety buffer (5 minutes)
	minBufferHours = 5.0 / 60.0
)

// Estimator turns distances into arrival estimates using a fixed
// average speed heuristic.
type Estimator struct {
	speedKmh float64
}

// NewEstimator creates an estimator. Non-positive speeds fall back to
// the default.
func NewEstimator(speedKmh float64) *Estimator {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return &Estimator{speedKmh: speedKmh}
}

// EstimateArrival predicts when a courier at (fromLat, fromLon) reaches
// (toLat, toLon). Distances under 100 m always yield now+5m, never "0".
func (e *Estimator) EstimateArrival(fromLat, fromLon, toLat, toLon float64) time.Time {
	distanceKm := util.DistanceKm(fromLat, fromLon, toLat, toLon)

	if distanceKm < arrivedRadiusKm {
		return time.Now().UTC().Add(imminentWindow)
	}

	travelHours := distanceKm / e.speedKmh

	// Buffer of 10% of travel time, minimum 5 minutes
	bufferHours := travelHours * 0.1
	if bufferHours < minBufferHours {
		bufferHours = minBufferHours
	}

	totalHours := travelHours + bufferHours
	return time.Now().UTC().Add(time.Duration(totalHours * float64(time.Hour)))
}

// FormatRemaining breaks an ETA down into a display label and the time
// left. Past ETAs report "Arrived" with the overdue flag set.
func FormatRemaining(eta time.Time) model.RemainingTime {
	remaining := time.Until(eta)

	if remaining <= 0 {
		return model.RemainingTime{
			Label:            "Arrived",
			MinutesRemaining: 0,
			HoursRemaining:   0,
			Overdue:          true,
		}
	}

	totalMinutes := int(remaining.Minutes())
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	label := fmt.Sprintf("%dm", minutes)
	if hours > 0 {
		label = fmt.Sprintf("%dh %dm", hours, minutes)
	}

	return model.RemainingTime{
		Label:            label,
		MinutesRemaining: totalMinutes,
		HoursRemaining:   hours,
		Overdue:          false,
	}
}
