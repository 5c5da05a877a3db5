package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/models"
	"quickbite/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListRestaurants returns active restaurants, filterable and paginated (public)
func ListRestaurants(c *gin.Context) {
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Restaurant{}).Where("is_active = ?", true)
	if cuisine := c.Query("cuisine"); cuisine != "" {
		// Cuisines are stored as a JSON array; LIKE is good enough for tags
		query = query.Where("cuisines LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}
	query = query.Session(&gorm.Session{}) // reusable for Count + Find

	var total int64
	query.Count(&total)

	var restaurants []models.Restaurant
	query.Order("rating_avg desc").Limit(limit).Offset(offset).Find(&restaurants)

	c.JSON(http.StatusOK, gin.H{
		"items":      restaurants,
		"pagination": paginationFor(page, limit, total),
	})
}

// GetRestaurant returns a single restaurant with its menu (public)
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant, filterable (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}

	query := config.DB.Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("is_veg") == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo exposes the order lifecycle for documentation (public)
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.AllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "role": t.Role})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Order lifecycle state machine",
	})
}
