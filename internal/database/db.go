package database

import (
	"log"

	"github.com/Hues-Apply/profile-sync/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the Postgres connection and runs migrations. The DSN comes
// from configuration; an empty DSN is a hard failure since drafts and audit
// events have nowhere to live without it.
func Connect(dsn string) *gorm.DB {
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	DB.AutoMigrate(&models.SectionDraft{}, &models.SyncSession{}, &models.SyncEvent{})
	return DB
}
