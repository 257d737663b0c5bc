package model

import "time"

// LocationReport is a single ingested position for a package,
// immutable once stored. Ordered by report timestamp for history.
type LocationReport struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PackageID string    `json:"package_id" gorm:"size:64;index;not null"`
	Latitude  float64   `json:"latitude" gorm:"not null"`
	Longitude float64   `json:"longitude" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrichedLocationEvent is a location report combined with the package
// status that resulted from policy evaluation. This is what observers
// of a tracking room receive.
type EnrichedLocationEvent struct {
	Type       string    `json:"type"`
	TrackingID string    `json:"tracking_id"`
	ReportID   uint      `json:"report_id"`
	PackageID  string    `json:"package_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Timestamp  time.Time `json:"timestamp"`
	Status     Status    `json:"status"`
}
