package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer      UserRole = "customer"
	RoleOwner         UserRole = "restaurant_owner"
	RoleDeliveryAgent UserRole = "delivery_agent"
	RoleAdmin         UserRole = "admin"
)

// ValidRoles is the closed set accepted at registration.
var ValidRoles = map[UserRole]bool{
	RoleCustomer:      true,
	RoleOwner:         true,
	RoleDeliveryAgent: true,
	RoleAdmin:         true,
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Phone        string    `json:"phone"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	Addresses    []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`

	// Delivery-agent fields, unused for other roles.
	IsAvailable bool     `json:"is_available" gorm:"default:false"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is a saved delivery address. At most one per user is the default.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Label     string    `json:"label"`
	Line1     string    `json:"line1" gorm:"not null"`
	City      string    `json:"city"`
	Postcode  string    `json:"postcode"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
