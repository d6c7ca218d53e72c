package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ListEmployees returns all employee profiles with their backing users
func ListEmployees(c *gin.Context) {
	var employees []models.Employee
	config.DB.Preload("User").Find(&employees)
	c.JSON(http.StatusOK, gin.H{"count": len(employees), "employees": employees})
}

type CreateEmployeeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Password    string          `json:"password" binding:"required,min=6"`
	Address     string          `json:"address"`
	Contact     string          `json:"contact"`
	Role        models.UserRole `json:"role"`
	Description string          `json:"description"`
	ImageLink   string          `json:"image_link"`
}

// CreateEmployee provisions a backing user and its employee profile in one
// transaction; failure of either rolls both back.
func CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be employee or admin"})
		return
	}

	var existing models.User
	if result := config.DB.Where("name = ?", req.Name).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Name already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Address:      req.Address,
		Contact:      req.Contact,
		PasswordHash: string(hash),
		Role:         role,
	}
	employee := models.Employee{
		Description: req.Description,
		ImageLink:   req.ImageLink,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		employee.UserID = user.ID
		return tx.Create(&employee).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":       token,
		"employee_id": employee.ID,
		"user_id":     user.ID,
		"name":        user.Name,
		"role":        user.Role,
	})
}

// GetEmployee returns one employee profile
func GetEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.Preload("User").First(&employee, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

type UpdateEmployeeRequest struct {
	Description *string `json:"description"`
	ImageLink   *string `json:"image_link"`
}

// UpdateEmployee partially updates an employee profile
func UpdateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.First(&employee, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Description != nil {
		employee.Description = *req.Description
	}
	if req.ImageLink != nil {
		employee.ImageLink = *req.ImageLink
	}
	if err := config.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// DeleteEmployee removes the profile and demotes the backing user to
// customer; the user account itself survives.
func DeleteEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.First(&employee, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", employee.UserID).
			Update("role", models.RoleCustomer).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
