package tracking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"packtrack/internal/model"
	"packtrack/internal/service/eta"
	"packtrack/internal/service/status"
)

var (
	// ErrPackageDelivered means the package already reached its recipient
	// and no further estimate applies
	ErrPackageDelivered = errors.New("package has already been delivered")

	// ErrRecipientNotSet means the package has no geocoded recipient to
	// estimate arrival against
	ErrRecipientNotSet = errors.New("recipient location not set")

	// ErrNoLocationReports means no position has been ingested yet
	ErrNoLocationReports = errors.New("no location reports for this package")
)

// PackageStore is the slice of the package repository the pipeline needs
type PackageStore interface {
	FindByTrackingID(ctx context.Context, trackingID string) (*model.Package, error)
	UpdateStatus(ctx context.Context, trackingID string, status model.Status) (bool, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Package, error)
}

// LocationStore persists and lists location reports
type LocationStore interface {
	Append(ctx context.Context, report *model.LocationReport) error
	ListByPackage(ctx context.Context, packageID string) ([]model.LocationReport, error)
	LatestByPackage(ctx context.Context, packageID string) (*model.LocationReport, error)
}

// PredictionStore keeps one live prediction per package
type PredictionStore interface {
	UpsertByPackage(ctx context.Context, prediction *model.Prediction) error
	GetByPackage(ctx context.Context, packageID string) (*model.Prediction, error)
}

// LatestCache is an optional hot cache of the newest report per package
type LatestCache interface {
	SetLatest(ctx context.Context, report *model.LocationReport) error
	GetLatest(ctx context.Context, packageID string) (*model.LocationReport, error)
}

// Broadcaster fans an event out to the observers of one tracking room
type Broadcaster interface {
	Broadcast(roomID string, event any)
}

const ingestStripes = 64

// TrackingService runs the ingestion pipeline: persist the report,
// evaluate the status policy, refresh the prediction, broadcast the
// enriched event. All collaborators are injected so tests can swap in
// deterministic doubles.
type TrackingService struct {
	packages    PackageStore
	locations   LocationStore
	predictions PredictionStore
	cache       LatestCache
	policy      *status.Policy
	estimator   *eta.Estimator
	rooms       Broadcaster

	// Striped per-tracking-id locks: ingestion for one package is
	// serialized, different packages proceed in parallel.
	stripes [ingestStripes]sync.Mutex
}

// NewTrackingService wires the pipeline. cache may be nil.
func NewTrackingService(
	packages PackageStore,
	locations LocationStore,
	predictions PredictionStore,
	cache LatestCache,
	policy *status.Policy,
	estimator *eta.Estimator,
	rooms Broadcaster,
) *TrackingService {
	return &TrackingService{
		packages:    packages,
		locations:   locations,
		predictions: predictions,
		cache:       cache,
		policy:      policy,
		estimator:   estimator,
		rooms:       rooms,
	}
}

func (s *TrackingService) stripeFor(trackingID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(trackingID))
	return &s.stripes[h.Sum32()%ingestStripes]
}

// IngestLocation processes one inbound location report and returns the
// enriched event that was broadcast. Reports that cannot be persisted
// are never broadcast. Status and prediction bookkeeping failures are
// logged and degrade gracefully: the report itself still succeeds.
func (s *TrackingService) IngestLocation(ctx context.Context, trackingID string, lat, lon float64, reportedAt *time.Time) (*model.EnrichedLocationEvent, error) {
	if !model.ValidCoordinates(lat, lon) {
		return nil, model.ErrInvalidCoordinates
	}

	mu := s.stripeFor(trackingID)
	mu.Lock()
	defer mu.Unlock()

	pkg, err := s.packages.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, model.ErrPackageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	timestamp := time.Now().UTC()
	if reportedAt != nil {
		timestamp = reportedAt.UTC()
	}

	report := &model.LocationReport{
		PackageID: pkg.ID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: timestamp,
	}
	if err := s.locations.Append(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, report); err != nil {
			log.Printf("Failed to cache latest location for %s: %v", trackingID, err)
		}
	}

	// Status must settle before the ETA is computed so the prediction
	// never runs against a stale pre-transition status.
	newStatus, changed := s.policy.Evaluate(pkg, lat, lon)
	if changed {
		if _, err := s.packages.UpdateStatus(ctx, trackingID, newStatus); err != nil {
			log.Printf("Failed to persist auto transition for %s: %v", trackingID, err)
			newStatus = pkg.Status
		} else {
			log.Printf("Auto-transitioned package %s to %s", trackingID, newStatus)
		}
	}
	pkg.Status = newStatus

	if newStatus != model.StatusDelivered && pkg.Recipient.IsSet() {
		arrival := s.estimator.EstimateArrival(lat, lon, pkg.Recipient.Latitude, pkg.Recipient.Longitude)
		prediction := &model.Prediction{
			PackageID:    pkg.ID,
			ETA:          arrival,
			CalculatedAt: time.Now().UTC(),
		}
		if err := s.predictions.UpsertByPackage(ctx, prediction); err != nil {
			log.Printf("Failed to store prediction for %s: %v", trackingID, err)
		}
	}

	event := &model.EnrichedLocationEvent{
		Type:       "location_update",
		TrackingID: trackingID,
		ReportID:   report.ID,
		PackageID:  pkg.ID,
		Latitude:   lat,
		Longitude:  lon,
		Timestamp:  timestamp,
		Status:     newStatus,
	}
	s.rooms.Broadcast(trackingID, event)

	return event, nil
}

// FindPackage loads one package by tracking id. Callers that serve
// user requests authorize against the result before doing any further
// work on its behalf.
func (s *TrackingService) FindPackage(ctx context.Context, trackingID string) (*model.Package, error) {
	pkg, err := s.packages.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, model.ErrPackageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return pkg, nil
}

// History returns all reports for a loaded package ordered by report
// timestamp
func (s *TrackingService) History(ctx context.Context, pkg *model.Package) ([]model.LocationReport, error) {
	reports, err := s.locations.ListByPackage(ctx, pkg.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return reports, nil
}

// ETAResult is the outcome of an on-demand arrival estimate
type ETAResult struct {
	ETA       time.Time           `json:"eta"`
	Remaining model.RemainingTime `json:"remaining"`
}

// CurrentETA recomputes the arrival estimate for a loaded package from
// its latest known position and persists the refreshed prediction.
func (s *TrackingService) CurrentETA(ctx context.Context, pkg *model.Package) (*ETAResult, error) {
	if pkg.Status == model.StatusDelivered {
		return nil, ErrPackageDelivered
	}
	if !pkg.Recipient.IsSet() {
		return nil, ErrRecipientNotSet
	}

	latest, err := s.latestReport(ctx, pkg.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if latest == nil {
		return nil, ErrNoLocationReports
	}

	arrival := s.estimator.EstimateArrival(latest.Latitude, latest.Longitude, pkg.Recipient.Latitude, pkg.Recipient.Longitude)

	prediction := &model.Prediction{
		PackageID:    pkg.ID,
		ETA:          arrival,
		CalculatedAt: time.Now().UTC(),
	}
	if err := s.predictions.UpsertByPackage(ctx, prediction); err != nil {
		log.Printf("Failed to store prediction for %s: %v", pkg.TrackingID, err)
	}

	return &ETAResult{
		ETA:       arrival,
		Remaining: eta.FormatRemaining(arrival),
	}, nil
}

// latestReport prefers the Redis cache and falls back to PostgreSQL
func (s *TrackingService) latestReport(ctx context.Context, packageID string) (*model.LocationReport, error) {
	if s.cache != nil {
		if report, err := s.cache.GetLatest(ctx, packageID); err == nil && report != nil {
			return report, nil
		} else if err != nil {
			log.Printf("Latest location cache read failed for %s: %v", packageID, err)
		}
	}
	return s.locations.LatestByPackage(ctx, packageID)
}

// ManualTransition applies an explicitly requested status change through
// the transition table. Invalid requests mutate nothing.
func (s *TrackingService) ManualTransition(ctx context.Context, trackingID string, requested model.Status) (*model.Package, error) {
	mu := s.stripeFor(trackingID)
	mu.Lock()
	defer mu.Unlock()

	pkg, err := s.packages.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	next, err := status.Apply(pkg.Status, requested)
	if err != nil {
		return nil, err
	}

	if _, err := s.packages.UpdateStatus(ctx, trackingID, next); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	pkg.Status = next
	return pkg, nil
}

// RefreshPredictions re-estimates arrival for every in-transit package
// from its latest known position. Called periodically by the prediction
// worker; failures on one package never stop the sweep.
func (s *TrackingService) RefreshPredictions(ctx context.Context) {
	pkgs, err := s.packages.ListByStatus(ctx, model.StatusInTransit)
	if err != nil {
		log.Printf("Prediction refresh: listing in-transit packages failed: %v", err)
		return
	}

	refreshed := 0
	for _, pkg := range pkgs {
		if !pkg.Recipient.IsSet() {
			continue
		}

		latest, err := s.latestReport(ctx, pkg.ID)
		if err != nil || latest == nil {
			continue
		}

		arrival := s.estimator.EstimateArrival(latest.Latitude, latest.Longitude, pkg.Recipient.Latitude, pkg.Recipient.Longitude)
		prediction := &model.Prediction{
			PackageID:    pkg.ID,
			ETA:          arrival,
			CalculatedAt: time.Now().UTC(),
		}
		if err := s.predictions.UpsertByPackage(ctx, prediction); err != nil {
			log.Printf("Prediction refresh failed for %s: %v", pkg.TrackingID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("Prediction worker refreshed %d estimates", refreshed)
	}
}
