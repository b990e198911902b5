package main

import (
	"log"
	"os"

	"adminboard-be/internal/model"
	"adminboard-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Notification{},
		&model.NotificationReadReceipt{},
		&model.UserNotificationPreference{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes the tag syntax can't express
	log.Println("Step 3: Creating supplementary indexes...")

	postMigrationSQL := []string{
		// GIN index so `recipients @> ?` visibility filters stay cheap
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipients_gin ON notifications USING GIN (recipients jsonb_path_ops);`,

		// Matches the canonical feed ordering (created_at DESC, id DESC)
		`CREATE INDEX IF NOT EXISTS idx_notifications_feed_order ON notifications (created_at DESC, id DESC);`,

		// Broadcast rows carry no recipients, targeted rows at least one. The
		// application enforces this too, but the database is the last line.
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'chk_notifications_recipients_mode'
			) THEN
				ALTER TABLE notifications ADD CONSTRAINT chk_notifications_recipients_mode CHECK (
					(delivery_mode = 'broadcast' AND recipients = '[]'::jsonb)
					OR (delivery_mode = 'targeted' AND jsonb_array_length(recipients) > 0)
				);
			END IF;
		END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
