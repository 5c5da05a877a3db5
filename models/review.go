package models

import "time"

// Review is one customer's verdict on one delivered order. The composite
// unique index backs the one-review-per-(customer, order) invariant at the
// storage level; handlers check it first to return a clean 400.
type Review struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CustomerID   uint       `json:"customer_id" gorm:"not null;uniqueIndex:idx_reviews_customer_order"`
	Customer     User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderID      uint       `json:"order_id" gorm:"not null;uniqueIndex:idx_reviews_customer_order"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`

	RestaurantRating int    `json:"restaurant_rating" gorm:"not null"`
	DeliveryRating   *int   `json:"delivery_rating,omitempty"`
	Comment          string `json:"comment"`

	IsVisible bool      `json:"is_visible" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
