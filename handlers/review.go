package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	OrderID          uint   `json:"order_id" binding:"required"`
	RestaurantRating int    `json:"restaurant_rating" binding:"required,min=1,max=5"`
	DeliveryRating   *int   `json:"delivery_rating" binding:"omitempty,min=1,max=5"`
	Comment          string `json:"comment"`
}

// CreateReview records one review per (customer, order) for a delivered
// order and refreshes the restaurant's rating aggregate in the same
// transaction.
func CreateReview(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to you"})
		return
	}
	if order.Status != models.StatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only delivered orders can be reviewed"})
		return
	}

	var existing models.Review
	if err := config.DB.Where("customer_id = ? AND order_id = ?", customerID, order.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You have already reviewed this order"})
		return
	}

	review := models.Review{
		CustomerID:       customerID,
		OrderID:          order.ID,
		RestaurantID:     order.RestaurantID,
		RestaurantRating: req.RestaurantRating,
		DeliveryRating:   req.DeliveryRating,
		Comment:          req.Comment,
		IsVisible:        true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return refreshRestaurantRating(tx, order.RestaurantID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review created", "review": review})
}

// refreshRestaurantRating rewrites the aggregate in one UPDATE with
// subqueries, so concurrent reviews cannot race a read-modify-write.
// Only visible reviews count; the average is rounded to one decimal.
func refreshRestaurantRating(tx *gorm.DB, restaurantID uint) error {
	return tx.Exec(`
		UPDATE restaurants SET
			rating_avg = COALESCE((
				SELECT ROUND(AVG(restaurant_rating), 1) FROM reviews
				 WHERE restaurant_id = ? AND is_visible = ?), 0),
			rating_count = (
				SELECT COUNT(*) FROM reviews
				 WHERE restaurant_id = ? AND is_visible = ?)
		WHERE id = ?`,
		restaurantID, true, restaurantID, true, restaurantID,
	).Error
}

// ListRestaurantReviews returns visible reviews for a restaurant (public)
func ListRestaurantReviews(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}

	page, limit, offset := pageParams(c)
	query := config.DB.Model(&models.Review{}).
		Where("restaurant_id = ? AND is_visible = ?", restaurantID, true).
		Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var reviews []models.Review
	query.Preload("Customer").Order("created_at desc").Limit(limit).Offset(offset).Find(&reviews)

	c.JSON(http.StatusOK, gin.H{
		"rating_avg":   restaurant.RatingAvg,
		"rating_count": restaurant.RatingCount,
		"items":        reviews,
		"pagination":   paginationFor(page, limit, total),
	})
}
