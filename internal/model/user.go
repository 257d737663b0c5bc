package model

import (
	"time"

	"gorm.io/gorm"
)

// Role controls what a user may do with packages and tracking data
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleDeliveryStaff Role = "delivery_staff"
	RoleManager       Role = "manager"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDeliveryStaff, RoleManager:
		return true
	}
	return false
}

// CanSubmitReports reports whether the role may ingest location reports
func (r Role) CanSubmitReports() bool {
	return r == RoleDeliveryStaff || r == RoleManager
}

// CanReadAnyPackage reports whether the role may read packages it does not own
func (r Role) CanReadAnyPackage() bool {
	return r == RoleDeliveryStaff || r == RoleManager
}

// User is the account model for the identity provider
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	FullName     string `json:"full_name" gorm:"size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Role         Role   `json:"role" gorm:"size:32;not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
