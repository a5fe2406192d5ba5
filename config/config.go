package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect loads the .env file and opens the console's local database. Only
// session and key/value state live here; every fleet entity stays in the
// external backend.
func Connect() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrations(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FleetAPIURL is the external fleet backend base URL.
func FleetAPIURL() string {
	return envOr("FLEET_API_URL", "http://localhost:9090")
}

// NominatimURL is the place-name search service.
func NominatimURL() string {
	return envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
}

// OSRMURL is the driving-route service.
func OSRMURL() string {
	return envOr("OSRM_URL", "https://router.project-osrm.org")
}

// AdminEmail is the inbox the notification poller watches.
func AdminEmail() string {
	return envOr("ADMIN_EMAIL", "admin@fleet.local")
}
