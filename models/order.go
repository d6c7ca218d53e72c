package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderStatus represents the states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusDelivered OrderStatus = "delivered"
)

func ValidStatus(s OrderStatus) bool {
	return s == StatusPending || s == StatusDelivered
}

type Order struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Number string `json:"number" gorm:"uniqueIndex"`
	UserID uint   `json:"user_id" gorm:"not null"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	// TotalPrice is a snapshot: computed once at submission and never
	// re-derived from current catalog prices.
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(8,2)"`
	Status     OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	Lines      []OrderLine     `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderLine associates one menu item and a quantity with an order. An item
// may appear at most once per order.
type OrderLine struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;uniqueIndex:idx_order_menu_item"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_order_menu_item"`
	MenuItem   *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
}
