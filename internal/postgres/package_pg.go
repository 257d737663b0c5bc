package postgres

import (
	"context"
	"errors"
	"fmt"

	"packtrack/internal/model"

	"gorm.io/gorm"
)

// PackageRepository persists packages in PostgreSQL
type PackageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a repository bound to the given connection
func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create stores a new package
func (r *PackageRepository) Create(ctx context.Context, pkg *model.Package) error {
	if err := r.db.WithContext(ctx).Create(pkg).Error; err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

// FindByTrackingID returns the package with the given tracking identifier.
// Returns model.ErrPackageNotFound when the identifier is unknown.
func (r *PackageRepository) FindByTrackingID(ctx context.Context, trackingID string) (*model.Package, error) {
	var pkg model.Package
	err := r.db.WithContext(ctx).Where("tracking_id = ?", trackingID).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package %s: %w", trackingID, err)
	}
	return &pkg, nil
}

// UpdateStatus sets the status of a package. Reports whether a row changed.
func (r *PackageRepository) UpdateStatus(ctx context.Context, trackingID string, status model.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Package{}).
		Where("tracking_id = ?", trackingID).
		Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("update status %s: %w", trackingID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListByUser returns packages owned by the given user
func (r *PackageRepository) ListByUser(ctx context.Context, userID string) ([]model.Package, error) {
	var pkgs []model.Package
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pkgs).Error
	if err != nil {
		return nil, fmt.Errorf("list packages for user %s: %w", userID, err)
	}
	return pkgs, nil
}

// ListAll returns every package, newest first
func (r *PackageRepository) ListAll(ctx context.Context) ([]model.Package, error) {
	var pkgs []model.Package
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&pkgs).Error
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return pkgs, nil
}

// ListByStatus returns packages currently in the given status
func (r *PackageRepository) ListByStatus(ctx context.Context, status model.Status) ([]model.Package, error) {
	var pkgs []model.Package
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&pkgs).Error
	if err != nil {
		return nil, fmt.Errorf("list packages by status %s: %w", status, err)
	}
	return pkgs, nil
}
