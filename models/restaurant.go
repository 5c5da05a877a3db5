package models

import "time"

type Restaurant struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OwnerID     uint     `json:"owner_id" gorm:"not null;index"`
	Owner       User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description"`
	Cuisines    []string `json:"cuisines" gorm:"serializer:json;not null"`

	Address   string   `json:"address" gorm:"not null"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`

	IsOpen   bool `json:"is_open" gorm:"default:true"`
	IsActive bool `json:"is_active" gorm:"default:true"`

	// Recomputed from visible reviews, never written directly by handlers.
	RatingAvg   float64 `json:"rating_avg" gorm:"default:0"`
	RatingCount int64   `json:"rating_count" gorm:"default:0"`

	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags,omitempty" gorm:"serializer:json"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	IsVeg        bool      `json:"is_veg" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
