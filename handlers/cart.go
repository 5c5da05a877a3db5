package handlers

import (
	"errors"
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCart returns the customer's cart. No cart is not an error — the
// client gets an empty, zero-total representation.
func GetCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var cart models.Cart
	err := config.DB.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"cart":     models.Cart{CustomerID: customerID, Items: []models.CartItem{}},
			"subtotal": 0,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": cart.Subtotal()})
}

type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// AddCartItem puts a menu item in the cart, merging quantity into an
// existing line for the same item. The cart is restaurant-exclusive:
// items from a second restaurant are rejected until the cart empties.
func AddCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Menu item '" + item.Name + "' is not available"})
		return
	}

	var cart models.Cart
	err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{CustomerID: customerID, RestaurantID: item.RestaurantID}
		if err := config.DB.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create cart"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if cart.RestaurantID != 0 && cart.RestaurantID != item.RestaurantID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart already holds items from another restaurant"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if cart.RestaurantID == 0 {
			if err := tx.Model(&cart).Update("restaurant_id", item.RestaurantID).Error; err != nil {
				return err
			}
		}

		var line models.CartItem
		err := tx.Where("cart_id = ? AND menu_item_id = ?", cart.ID, item.ID).First(&line).Error
		if err == nil {
			// Merge into the existing line; the original price snapshot stays
			return tx.Model(&line).Update("quantity", line.Quantity+req.Quantity).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.CartItem{
			CartID:     cart.ID,
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   req.Quantity,
			Price:      item.Price, // snapshot at add-time
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add item to cart"})
		return
	}

	config.DB.Preload("Items").First(&cart, cart.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": cart, "subtotal": cart.Subtotal()})
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItem sets a line's quantity (must stay ≥ 1)
func UpdateCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
		return
	}
	var line models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).First(&line).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	config.DB.Model(&line).Update("quantity", req.Quantity)
	config.DB.Preload("Items").First(&cart, cart.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart, "subtotal": cart.Subtotal()})
}

// RemoveCartItem deletes a line. When the last line goes, the cart stays
// but its restaurant reference is cleared so any restaurant is accepted
// next.
func RemoveCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
		return
	}
	var line models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).First(&line).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&line).Error; err != nil {
			return err
		}
		var remaining int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Model(&cart).Update("restaurant_id", 0).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove item"})
		return
	}

	config.DB.Preload("Items").First(&cart, cart.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Item removed", "cart": cart, "subtotal": cart.Subtotal()})
}

// ClearCart deletes the cart entirely
func ClearCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
