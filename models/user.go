package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"uniqueIndex;not null"`
	Address      string          `json:"address"`
	Contact      string          `json:"contact"`
	BuyerScore   decimal.Decimal `json:"buyer_score" gorm:"type:decimal(5,2)"`
	PasswordHash string          `json:"-" gorm:"not null"`
	Role         UserRole        `json:"role" gorm:"not null;default:'customer'"`
	Employee     *Employee       `json:"employee,omitempty" gorm:"foreignKey:UserID"`
	Orders       []Order         `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Employee is the 1:1 staff profile record. The role itself lives on the
// backing User.
type Employee struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Description string    `json:"description"`
	ImageLink   string    `json:"image_link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
