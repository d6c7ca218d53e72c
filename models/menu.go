package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory is the closed set of menu sections.
type MenuCategory string

const (
	CategoryBurger   MenuCategory = "burger"
	CategoryDessert  MenuCategory = "dessert"
	CategoryDrink    MenuCategory = "drink"
	CategoryFastFood MenuCategory = "fast_food"
)

func ValidCategory(c MenuCategory) bool {
	switch c {
	case CategoryBurger, CategoryDessert, CategoryDrink, CategoryFastFood:
		return true
	}
	return false
}

type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Ingredients string          `json:"ingredients"`
	ImageLink   string          `json:"image_link"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
	Category    MenuCategory    `json:"category"`
	Calories    int             `json:"calories"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
