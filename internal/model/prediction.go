package model

import "time"

// Prediction holds the current arrival estimate for a package.
// At most one live row exists per package; each recalculation
// overwrites the previous one.
type Prediction struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PackageID    string    `json:"package_id" gorm:"size:64;uniqueIndex;not null"`
	ETA          time.Time `json:"eta" gorm:"not null"`
	CalculatedAt time.Time `json:"calculated_at" gorm:"not null"`
}

// RemainingTime is the human-readable breakdown of time left until an ETA.
type RemainingTime struct {
	Label            string `json:"label"`
	MinutesRemaining int    `json:"minutes_remaining"`
	HoursRemaining   int    `json:"hours_remaining"`
	Overdue          bool   `json:"overdue"`
}
