package models

import "time"

// Cart is the per-customer staging area for a future order. A customer has
// at most one cart, and every line must come from the cart's restaurant.
// RestaurantID is zero when the cart holds no items and is ready to accept
// any restaurant again.
type Cart struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CustomerID   uint       `json:"customer_id" gorm:"uniqueIndex;not null"`
	RestaurantID uint       `json:"restaurant_id"`
	Items        []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CartItem snapshots the menu item's price at add-time; later menu edits do
// not change lines already in the cart.
type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CartID     uint      `json:"cart_id" gorm:"not null;index"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Subtotal sums price × quantity across lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
