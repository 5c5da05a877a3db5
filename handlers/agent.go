package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMyDeliveries returns all orders assigned to the logged-in agent
func GetMyDeliveries(c *gin.Context) {
	agentID := middleware.GetUserID(c)
	page, limit, offset := pageParams(c)

	query := config.DB.Model(&models.Order{}).Where("agent_id = ?", agentID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	query.Count(&total)

	var orders []models.Order
	query.Preload("Items").Preload("Restaurant").
		Order("updated_at desc").Limit(limit).Offset(offset).Find(&orders)

	c.JSON(http.StatusOK, gin.H{
		"items":      orders,
		"pagination": paginationFor(page, limit, total),
	})
}

type AgentStatusRequest struct {
	IsAvailable *bool    `json:"is_available" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// UpdateMyStatus sets the agent's availability and last-known location
func UpdateMyStatus(c *gin.Context) {
	agentID := middleware.GetUserID(c)
	var req AgentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := map[string]interface{}{"is_available": *req.IsAvailable}
	if req.Latitude != nil {
		update["latitude"] = req.Latitude
	}
	if req.Longitude != nil {
		update["longitude"] = req.Longitude
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", agentID).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update status"})
		return
	}

	var agent models.User
	config.DB.First(&agent, agentID)
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "agent": agent})
}

// ListAvailableAgents lets owners and admins discover agents to assign
func ListAvailableAgents(c *gin.Context) {
	var agents []models.User
	config.DB.
		Where("role = ? AND is_active = ? AND is_available = ?", models.RoleDeliveryAgent, true, true).
		Find(&agents)
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "agents": agents})
}
