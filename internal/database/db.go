package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"netwatch/internal/models"
)

// Open connects to Postgres and migrates the schema. The retry loop covers
// the common case of the database container still starting up.
func Open(dsn string) *gorm.DB {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = db.AutoMigrate(
		&models.Device{},
		&models.BandwidthMetric{},
		&models.SystemMetric{},
		&models.SecurityEvent{},
		&models.IdsRule{},
		&models.PasswordVault{},
		&models.PasswordEntry{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
