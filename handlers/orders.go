package handlers

import (
	"net/http"

	"restaurant-api/apperrors"
	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	// UserID lets an employee or admin place the order on behalf of
	// another user; zero means the caller orders for themselves.
	UserID uint                 `json:"user_id"`
	Items  []orders.LineRequest `json:"items" binding:"required,min=1"`
}

// PlaceOrder submits a new order
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetID := middleware.GetUserID(c)
	if req.UserID != 0 && req.UserID != targetID {
		if !middleware.GetCapabilities(c).Has(models.CapPlaceOrderForOthers) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You may only place orders for yourself"})
			return
		}
		var target models.User
		if err := config.DB.First(&target, req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}
		targetID = target.ID
	}

	policy := orders.PolicyFromString(config.OrderLinePolicy)
	order, err := orders.Submit(config.DB, targetID, req.Items, policy)
	if err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	config.DB.Preload("Lines.MenuItem").First(order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   orders.NewView(order),
	})
}

// ListOrders returns all orders for employees and admins, or the caller's
// own orders otherwise
func ListOrders(c *gin.Context) {
	query := config.DB.Preload("Lines.MenuItem").Preload("User")
	if !middleware.GetCapabilities(c).Has(models.CapViewAllOrders) {
		query = query.Where("user_id = ?", middleware.GetUserID(c))
	} else if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var all []models.Order
	query.Order("created_at desc").Find(&all)

	summary := map[string]int{}
	for _, o := range all {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(all),
		"order_summary": summary,
		"orders":        orders.NewViews(all),
	})
}

// GetOrder returns one order with computed line subtotals. Visible to the
// owner, employees and admins.
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Lines.MenuItem").Preload("User").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != middleware.GetUserID(c) &&
		!middleware.GetCapabilities(c).Has(models.CapViewAllOrders) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orders.NewView(&order)})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus transitions an order's status (employee or admin)
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	caps := middleware.GetCapabilities(c)
	if err := orders.CanTransition(order.Status, req.Status, caps); err != nil {
		c.JSON(apperrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	prev := order.Status
	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":        order.ID,
		"previous_status": prev,
		"status":          req.Status,
	})
}

// DeleteOrder removes an order and its lines (admin)
func DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
