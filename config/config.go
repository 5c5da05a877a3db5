package config

import (
	"log"
	"os"

	"quickbite/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "quickbite_super_secret_2026"))

// Order pricing knobs: flat delivery fee, tax as a fraction of the cart
// subtotal, and the ETA stamped on every new order.
const (
	DeliveryFee          = 50.0
	TaxRate              = 0.05
	EstimatedDeliveryMin = 45
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads a .env file if present. A missing file is not an error —
// deployments pass real environment variables instead.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "quickbite_super_secret_2026"))
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "quickbite.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

// Migrate runs auto-migration for every model. Split out from InitDB so
// tests can run it against their own in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Review{},
	)
}
