package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

// ListOrderLines returns all raw order-line records (admin)
func ListOrderLines(c *gin.Context) {
	var lines []models.OrderLine
	config.DB.Preload("MenuItem").Find(&lines)
	c.JSON(http.StatusOK, gin.H{"count": len(lines), "order_lines": lines})
}

type CreateOrderLineRequest struct {
	OrderID    uint `json:"order_id" binding:"required"`
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// CreateOrderLine attaches a raw line to an existing order (admin). The
// order's snapshot total is deliberately left untouched.
func CreateOrderLine(c *gin.Context) {
	var req CreateOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var existing models.OrderLine
	if result := config.DB.Where("order_id = ? AND menu_item_id = ?", req.OrderID, req.MenuItemID).
		First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This order already contains that menu item"})
		return
	}

	line := models.OrderLine{
		OrderID:    req.OrderID,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	}
	if err := config.DB.Create(&line).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create order line"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_line": line})
}

// GetOrderLine returns one raw order-line record (admin)
func GetOrderLine(c *gin.Context) {
	var line models.OrderLine
	if err := config.DB.Preload("MenuItem").First(&line, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order line not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_line": line})
}

// DeleteOrderLine removes one raw order-line record (admin)
func DeleteOrderLine(c *gin.Context) {
	var line models.OrderLine
	if err := config.DB.First(&line, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order line not found"})
		return
	}
	if err := config.DB.Delete(&line).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order line"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order line deleted"})
}
