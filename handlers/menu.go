package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ListMenu returns all menu items, optionally filtered by category or name
// search (public)
func ListMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

type MenuItemRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Ingredients string              `json:"ingredients"`
	ImageLink   string              `json:"image_link"`
	Price       decimal.Decimal     `json:"price"`
	Category    models.MenuCategory `json:"category" binding:"required"`
	Calories    int                 `json:"calories"`
}

func validateMenuItemFields(price decimal.Decimal, calories int, category models.MenuCategory) string {
	if price.IsNegative() {
		return "Price must not be negative"
	}
	if calories < 0 {
		return "Calories must not be negative"
	}
	if !models.ValidCategory(category) {
		return "Category must be one of: burger, dessert, drink, fast_food"
	}
	return ""
}

// CreateMenuItem adds a menu item (employee or admin)
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateMenuItemFields(req.Price, req.Calories, req.Category); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.Ingredients,
		ImageLink:   req.ImageLink,
		Price:       req.Price,
		Category:    req.Category,
		Calories:    req.Calories,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// GetMenuItem returns one item plus a live count of order lines that
// reference it (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var usedInOrders int64
	config.DB.Model(&models.OrderLine{}).Where("menu_item_id = ?", item.ID).Count(&usedInOrders)

	c.JSON(http.StatusOK, gin.H{
		"menu_item":      item,
		"used_in_orders": usedInOrders,
	})
}

type UpdateMenuItemRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Ingredients *string              `json:"ingredients"`
	ImageLink   *string              `json:"image_link"`
	Price       *decimal.Decimal     `json:"price"`
	Category    *models.MenuCategory `json:"category"`
	Calories    *int                 `json:"calories"`
}

// UpdateMenuItem partially updates an item (employee or admin)
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Ingredients != nil {
		item.Ingredients = *req.Ingredients
	}
	if req.ImageLink != nil {
		item.ImageLink = *req.ImageLink
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if msg := validateMenuItemFields(item.Price, item.Calories, item.Category); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem removes an item and the order lines referencing it.
// Snapshot order totals are untouched.
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ExportMenuToExcel streams the catalog as an .xlsx workbook (admin)
func ExportMenuToExcel(c *gin.Context) {
	var items []models.MenuItem
	if err := config.DB.Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	headers := []string{"ID", "Name", "Description", "Ingredients", "Price", "Category", "Calories", "CreatedAt"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetValue(item.ID)
		row.AddCell().SetValue(item.Name)
		row.AddCell().SetValue(item.Description)
		row.AddCell().SetValue(item.Ingredients)
		row.AddCell().SetValue(item.Price.String())
		row.AddCell().SetValue(string(item.Category))
		row.AddCell().SetValue(item.Calories)
		row.AddCell().SetValue(item.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=menu.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
