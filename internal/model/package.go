package model

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the delivery status of a package
type Status string

const (
	StatusRegistered Status = "registered"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// Location is a geographic coordinate pair. A zero latitude or
// longitude marks the location as unset.
type Location struct {
	Latitude  float64 `json:"latitude" gorm:"not null;default:0"`
	Longitude float64 `json:"longitude" gorm:"not null;default:0"`
}

// IsSet reports whether the location carries a real coordinate.
// Either coordinate at zero means the endpoint was never geocoded.
func (l Location) IsSet() bool {
	return l.Latitude != 0 && l.Longitude != 0
}

// Contact holds the name, address and geocoded location of a
// package endpoint (sender or recipient).
type Contact struct {
	Name    string `json:"name" gorm:"size:100;not null"`
	Address string `json:"address" gorm:"size:500;not null"`
	Phone   string `json:"phone" gorm:"size:20;not null"`
	Location
}

// Package is the unified model for the package entity (used for both
// PostgreSQL and API responses)
type Package struct {
	ID         string  `json:"id" gorm:"primaryKey"`
	TrackingID string  `json:"tracking_id" gorm:"size:64;uniqueIndex;not null"`
	Sender     Contact `json:"sender" gorm:"embedded;embeddedPrefix:sender_"`
	Recipient  Contact `json:"recipient" gorm:"embedded;embeddedPrefix:recipient_"`
	Status     Status  `json:"status" gorm:"size:32;not null"`
	UserID     string  `json:"user_id" gorm:"size:64;index;not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
