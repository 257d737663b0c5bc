package model

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound means the tracking identifier is unknown
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidCoordinates means a latitude/longitude was outside the
	// valid range and was rejected at the boundary
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrStoreUnavailable means the persistence layer is unreachable
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidTransitionError reports a status change that the transition
// table does not permit. State is never mutated when it is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// ValidCoordinates checks latitude/longitude ranges at the ingestion boundary
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
