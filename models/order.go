package models

import "time"

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks settlement; orders flip to paid on delivery.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`

	CustomerID   uint       `json:"customer_id" gorm:"not null;index"`
	Customer     User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	AgentID      *uint      `json:"agent_id" gorm:"index"`
	Agent        *User      `json:"agent,omitempty" gorm:"foreignKey:AgentID"`

	Status        OrderStatus   `json:"status" gorm:"not null;default:'placed'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`

	DeliveryAddress string  `json:"delivery_address" gorm:"not null"`
	Subtotal        float64 `json:"subtotal"`
	DeliveryFee     float64 `json:"delivery_fee"`
	Tax             float64 `json:"tax"`
	FinalAmount     float64 `json:"final_amount"`

	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery"`

	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem is a copy of the cart line at placement time — it never points
// back at a live MenuItem row for its name or price.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
