package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ListUsers returns all users (employee or admin)
func ListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// canTouchUser allows self-access or the manage-users capability.
func canTouchUser(c *gin.Context, userID uint) bool {
	return middleware.GetUserID(c) == userID ||
		middleware.GetCapabilities(c).Has(models.CapManageUsers)
}

// GetUser returns one user with its order history and per-line subtotals
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Preload("Employee").First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !canTouchUser(c, user.ID) && !middleware.GetCapabilities(c).Has(models.CapViewUsers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only view your own account"})
		return
	}

	var userOrders []models.Order
	config.DB.Preload("Lines.MenuItem").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&userOrders)

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"orders": orders.NewViews(userOrders),
	})
}

type UpdateUserRequest struct {
	Name     *string          `json:"name"`
	Address  *string          `json:"address"`
	Contact  *string          `json:"contact"`
	Score    *decimal.Decimal `json:"buyer_score"`
	Password *string          `json:"password"`
}

// UpdateUser partially updates a user (self or admin)
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !canTouchUser(c, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only update your own account"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}
	if req.Score != nil {
		user.BuyerScore = *req.Score
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user and cascades to its employee profile, orders
// and order lines (self or admin)
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !canTouchUser(c, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only delete your own account"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", user.ID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Employee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
