package config

import (
	"log"
	"os"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_api_super_secret_2024"))

// OrderLinePolicy controls how order submission treats bad lines:
// "abort" rejects the whole order, "best_effort" skips them.
var OrderLinePolicy = "abort"

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	OrderLinePolicy = getEnv("ORDER_LINE_POLICY", "abort")

	var dial gorm.Dialector
	switch getEnv("DB_DRIVER", "sqlite") {
	case "postgres":
		dial = postgres.Open(getEnv("DB_DSN", "host=localhost user=postgres dbname=restaurant sslmode=disable"))
	default:
		dial = sqlite.Open(getEnv("DB_DSN", "restaurant.db"))
	}

	var err error
	DB, err = gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate applies the schema for all models. Split out so tests can run it
// against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
	)
}
