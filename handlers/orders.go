package handlers

import (
	"math"
	"net/http"
	"time"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"
	"quickbite/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	Note            string `json:"note"`
}

// PlaceOrder converts the customer's cart into an order. The order insert
// and the cart delete run in one transaction so a crash can never leave
// both an order and a stale cart behind.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	// Body is optional — the default address is used when none is sent
	var req PlaceOrderRequest
	_ = c.ShouldBindJSON(&req)

	var cart models.Cart
	if err := config.DB.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}

	address := req.DeliveryAddress
	if address == "" {
		var def models.Address
		if err := config.DB.Where("user_id = ? AND is_default = ?", customerID, true).First(&def).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Delivery address required"})
			return
		}
		address = def.Line1
		if def.City != "" {
			address += ", " + def.City
		}
	}

	subtotal := cart.Subtotal()
	fee := config.DeliveryFee
	tax := math.Round(subtotal * config.TaxRate)
	final := subtotal + fee + tax
	eta := time.Now().Add(config.EstimatedDeliveryMin * time.Minute)

	order := models.Order{
		OrderNumber:       "QB-" + uuid.NewString(),
		CustomerID:        customerID,
		RestaurantID:      cart.RestaurantID,
		Status:            models.StatusPlaced,
		PaymentStatus:     models.PaymentPending,
		DeliveryAddress:   address,
		Subtotal:          subtotal,
		DeliveryFee:       fee,
		Tax:               tax,
		FinalAmount:       final,
		EstimatedDelivery: &eta,
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPlaced,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order"})
		return
	}

	config.DB.Preload("Items").Preload("Restaurant").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders is role-filtered: customers see their own orders, owners see
// orders for restaurants they own, agents see their assignments, admins
// see everything.
func ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Order{})
	switch role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", userID)
	case models.RoleOwner:
		query = query.Where("restaurant_id IN (?)",
			config.DB.Model(&models.Restaurant{}).Select("id").Where("owner_id = ?", userID))
	case models.RoleDeliveryAgent:
		query = query.Where("agent_id = ?", userID)
	case models.RoleAdmin:
		// no filter
	default:
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Preload("Items").Preload("Restaurant").
		Order("created_at desc").Limit(limit).Offset(offset).Find(&orders)

	c.JSON(http.StatusOK, gin.H{
		"items":      orders,
		"pagination": paginationFor(page, limit, total),
	})
}

// canAccessOrder applies the per-role ownership rule for a single order.
func canAccessOrder(order *models.Order, userID uint, role models.UserRole) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return order.CustomerID == userID
	case models.RoleDeliveryAgent:
		return order.AgentID != nil && *order.AgentID == userID
	case models.RoleOwner:
		var restaurant models.Restaurant
		err := config.DB.Where("id = ? AND owner_id = ?", order.RestaurantID, userID).First(&restaurant).Error
		return err == nil
	}
	return false
}

// GetOrder returns a single order with full detail and access check
func GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Restaurant").
		Preload("StatusHistory").
		Preload("Agent").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if !canAccessOrder(&order, userID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order through the state machine. Owners drive
// accepted/preparing/ready on their own restaurants' orders, agents drive
// picked_up/delivered on their assignments, customers may only cancel.
// Delivered stamps the actual delivery time and settles payment.
func UpdateOrderStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if !canAccessOrder(&order, userID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to you"})
		return
	}

	// A role that can never set this status is an authorization problem;
	// a legal role making an out-of-sequence move is a business-rule one.
	if !statemachine.RoleCanSet(role, req.Status) {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "Role '" + string(role) + "' may not set status '" + string(req.Status) + "'",
		})
		return
	}
	if err := statemachine.CanTransition(order.Status, req.Status, role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":           err.Error(),
			"current_status":    order.Status,
			"valid_next_states": statemachine.NextStates(order.Status),
		})
		return
	}

	prevStatus := order.Status
	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusDelivered {
		now := time.Now()
		updates["actual_delivery"] = &now
		updates["payment_status"] = models.PaymentPaid
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		if req.Status == models.StatusDelivered && order.AgentID != nil {
			// Agent is free for the next assignment
			if err := tx.Model(&models.User{}).Where("id = ?", *order.AgentID).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  userID,
			Note:       req.Note,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}

type AssignAgentRequest struct {
	AgentID uint `json:"agent_id" binding:"required"`
}

// AssignAgent attaches a delivery agent to an order. Allowed for the
// owning restaurant's owner or an admin; the target must be an active
// delivery agent.
func AssignAgent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var req AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if role == models.RoleOwner && !canAccessOrder(&order, userID, role) {
		c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to your restaurant"})
		return
	}

	var agent models.User
	if err := config.DB.First(&agent, req.AgentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Agent not found"})
		return
	}
	if agent.Role != models.RoleDeliveryAgent || !agent.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Target user is not an active delivery agent"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("agent_id", agent.ID).Error; err != nil {
			return err
		}
		return tx.Model(&agent).Update("is_available", false).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign agent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Agent assigned",
		"order_id": order.ID,
		"agent_id": agent.ID,
	})
}
