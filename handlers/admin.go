package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListTables returns the names of the application's database tables (admin)
func ListTables(c *gin.Context) {
	tables, err := config.DB.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

// MaintenanceReset truncates all domain tables. This is an explicitly
// invoked operation, never something that runs on startup.
func MaintenanceReset(c *gin.Context) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Children before parents.
		for _, model := range []interface{}{
			&models.OrderLine{},
			&models.Order{},
			&models.Employee{},
			&models.MenuItem{},
			&models.User{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All domain tables truncated"})
}
