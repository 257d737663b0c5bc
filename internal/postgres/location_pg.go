package postgres

import (
	"context"
	"errors"
	"fmt"

	"packtrack/internal/model"

	"gorm.io/gorm"
)

// LocationRepository persists location reports in PostgreSQL
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a repository bound to the given connection
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Append stores a new location report and fills in its generated ID
func (r *LocationRepository) Append(ctx context.Context, report *model.LocationReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("append location report: %w", err)
	}
	return nil
}

// ListByPackage returns all reports for a package ordered by report
// timestamp ascending (the route history order)
func (r *LocationRepository) ListByPackage(ctx context.Context, packageID string) ([]model.LocationReport, error) {
	var reports []model.LocationReport
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("timestamp ASC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list reports for package %s: %w", packageID, err)
	}
	return reports, nil
}

// LatestByPackage returns the most recent report for a package, or nil
// when none exist yet
func (r *LocationRepository) LatestByPackage(ctx context.Context, packageID string) (*model.LocationReport, error) {
	var report model.LocationReport
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("timestamp DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest report for package %s: %w", packageID, err)
	}
	return &report, nil
}
