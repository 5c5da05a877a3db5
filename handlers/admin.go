package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminGetAllUsers returns all users, filterable by role — admin only
func AdminGetAllUsers(c *gin.Context) {
	page, limit, offset := pageParams(c)
	query := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var users []models.User
	query.Limit(limit).Offset(offset).Find(&users)
	c.JSON(http.StatusOK, gin.H{"items": users, "pagination": paginationFor(page, limit, total)})
}

// AdminGetAllRestaurants returns all restaurants — admin only
func AdminGetAllRestaurants(c *gin.Context) {
	page, limit, offset := pageParams(c)
	query := config.DB.Model(&models.Restaurant{}).Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var restaurants []models.Restaurant
	query.Preload("Owner").Limit(limit).Offset(offset).Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"items": restaurants, "pagination": paginationFor(page, limit, total)})
}

// AdminGetAllOrders returns every order with a status/revenue dashboard
// summary — admin only
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var orders []models.Order
	query.Preload("Items").Preload("Customer").Preload("Restaurant").Preload("Agent").
		Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.FinalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminDeactivateUser soft-deactivates an account. Users are never
// hard-deleted.
func AdminDeactivateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	config.DB.Model(&user).Update("is_active", false)
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated", "user_id": user.ID})
}

// AdminReactivateUser flips a deactivated account back on
func AdminReactivateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	config.DB.Model(&user).Update("is_active", true)
	c.JSON(http.StatusOK, gin.H{"message": "User reactivated", "user_id": user.ID})
}

type ReviewVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// AdminSetReviewVisibility hides or restores a review and refreshes the
// restaurant aggregate, since only visible reviews count
func AdminSetReviewVisibility(c *gin.Context) {
	var req ReviewVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Update("is_visible", *req.IsVisible).Error; err != nil {
			return err
		}
		return refreshRestaurantRating(tx, review.RestaurantID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review visibility updated", "review_id": review.ID})
}

// AdminForceOrderStatus lets admin override any order state (emergency use)
func AdminForceOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  adminID,
			Note:       "[ADMIN OVERRIDE] " + req.Reason,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
