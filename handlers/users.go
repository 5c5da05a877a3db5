package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated user's profile with addresses
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.Preload("Addresses").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the caller's own mutable profile fields
func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	// Role, email and active flag are not self-service
	allowed := map[string]bool{"name": true, "phone": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&user).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

type AddressRequest struct {
	Label     string   `json:"label"`
	Line1     string   `json:"line1" binding:"required"`
	City      string   `json:"city"`
	Postcode  string   `json:"postcode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

// ListAddresses returns the caller's saved addresses
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	config.DB.Where("user_id = ?", userID).Order("is_default desc, id asc").Find(&addresses)
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// AddAddress saves a new address; marking it default demotes the old one
func AddAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	address := models.Address{
		UserID:    userID,
		Label:     req.Label,
		Line1:     req.Line1,
		City:      req.City,
		Postcode:  req.Postcode,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}

	// First address becomes the default automatically
	var count int64
	config.DB.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count)
	if count == 0 {
		address.IsDefault = true
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address saved", "address": address})
}

// UpdateAddress edits one of the caller's addresses
func UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"label":      req.Label,
			"line1":      req.Line1,
			"city":       req.City,
			"postcode":   req.Postcode,
			"latitude":   req.Latitude,
			"longitude":  req.Longitude,
			"is_default": req.IsDefault,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": address})
}

// DeleteAddress removes one of the caller's addresses
func DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
		return
	}
	config.DB.Delete(&address)
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
