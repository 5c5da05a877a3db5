package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Cuisines    []string `json:"cuisines" binding:"required,min=1"`
	Address     string   `json:"address" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OpensAt     string   `json:"opens_at"`
	ClosesAt    string   `json:"closes_at"`
}

// CreateRestaurant lets an owner-role user create a restaurant
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Cuisines:    req.Cuisines,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OpensAt:     req.OpensAt,
		ClosesAt:    req.ClosesAt,
		IsOpen:      true,
		IsActive:    true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurants lists restaurants owned by the logged-in user
func GetMyRestaurants(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurants []models.Restaurant
	config.DB.Preload("MenuItems").Where("owner_id = ?", ownerID).Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// UpdateRestaurant updates restaurant details (owner of that restaurant only)
func UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}
	if restaurant.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You don't own this restaurant"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	// Rating aggregate and ownership are never client-writable
	allowed := map[string]bool{
		"name": true, "description": true, "address": true,
		"opens_at": true, "closes_at": true, "is_open": true,
		"latitude": true, "longitude": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if raw, ok := req["cuisines"].([]interface{}); ok {
		cuisines := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				cuisines = append(cuisines, s)
			}
		}
		if len(cuisines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cuisines must not be empty"})
			return
		}
		restaurant.Cuisines = cuisines
		config.DB.Model(&restaurant).Update("cuisines", restaurant.Cuisines)
	}
	config.DB.Model(&restaurant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type MenuItemRequest struct {
	RestaurantID uint     `json:"restaurant_id" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"required,gte=0"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	IsVeg        bool     `json:"is_veg"`
}

// ownedRestaurant loads the restaurant and checks the caller owns it.
func ownedRestaurant(c *gin.Context, restaurantID uint) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return nil, false
	}
	if restaurant.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You don't own this restaurant"})
		return nil, false
	}
	return &restaurant, true
}

// AddMenuItem adds an item to one of the caller's restaurants
func AddMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if _, ok := ownedRestaurant(c, req.RestaurantID); !ok {
		return
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Tags:         req.Tags,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateMenuItem updates a menu item (parent restaurant's owner only)
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	if _, ok := ownedRestaurant(c, item.RestaurantID); !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "category": true,
		"is_available": true, "is_veg": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if price, ok := update["price"].(float64); ok && price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must not be negative"})
		return
	}
	config.DB.Model(&item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item (parent restaurant's owner only)
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	if _, ok := ownedRestaurant(c, item.RestaurantID); !ok {
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
