package postgres

import (
	"context"
	"errors"
	"fmt"

	"packtrack/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PredictionRepository persists arrival predictions in PostgreSQL.
// Exactly one live row exists per package.
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a repository bound to the given connection
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// UpsertByPackage overwrites the prediction for a package (last write wins)
func (r *PredictionRepository) UpsertByPackage(ctx context.Context, prediction *model.Prediction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "package_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"eta", "calculated_at"}),
		}).
		Create(prediction).Error
	if err != nil {
		return fmt.Errorf("upsert prediction for package %s: %w", prediction.PackageID, err)
	}
	return nil
}

// GetByPackage returns the live prediction for a package, or nil when
// none has been calculated yet
func (r *PredictionRepository) GetByPackage(ctx context.Context, packageID string) (*model.Prediction, error) {
	var prediction model.Prediction
	err := r.db.WithContext(ctx).Where("package_id = ?", packageID).First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prediction for package %s: %w", packageID, err)
	}
	return &prediction, nil
}
