package main

import (
	"log"
	"os"
	"time"

	"adminboard-be/internal/model"
	"adminboard-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Directory Users...")
	seedUsers(db)

	log.Println("Seeding Preferences...")
	seedPreferences(db)

	log.Println("Seeding Notifications...")
	seedNotifications(db)

	log.Println("Seeding completed!")
}

func strPtr(s string) *string { return &s }

func seedUsers(db *gorm.DB) {
	users := []model.User{
		{ExternalID: "auth0|admin-ops", Email: "ops@adminboard.dev", FullName: "Operations Admin", Role: "admin", AvatarURL: strPtr("https://cdn.adminboard.dev/avatars/ops.png")},
		{ExternalID: "auth0|demo-alice", Email: "alice@adminboard.dev", FullName: "Alice Winters", Role: "user", AvatarURL: strPtr("https://cdn.adminboard.dev/avatars/alice.png")},
		{ExternalID: "auth0|demo-bob", Email: "bob@adminboard.dev", FullName: "Bob Tanaka", Role: "user"},
		{ExternalID: "auth0|demo-carol", Email: "carol@adminboard.dev", FullName: "Carol Mbeki", Role: "user"},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("external_id = ?", u.ExternalID).First(&existing).Error; err == nil {
			log.Printf("User '%s' already exists, skipping...", u.ExternalID)
			continue
		}

		if err := db.Create(&u).Error; err != nil {
			log.Printf("Error creating user '%s': %v", u.ExternalID, err)
		} else {
			log.Printf("Created user: %s (%s)", u.FullName, u.ExternalID)
		}
	}
}

func seedPreferences(db *gorm.DB) {
	prefs := []model.UserNotificationPreference{
		// Bob sleeps through the night: quiet hours wrap midnight
		{UserID: "auth0|demo-bob", EmailEnabled: true, PushEnabled: true, CategoryMarketing: true, CategorySystem: true, CategoryUpdates: true, Frequency: "immediate", QuietHoursEnabled: true, QuietHoursStart: "22:00", QuietHoursEnd: "07:00"},
		// Carol opted out of marketing and batches everything weekly
		{UserID: "auth0|demo-carol", EmailEnabled: true, PushEnabled: false, CategoryMarketing: false, CategorySystem: true, CategoryUpdates: true, Frequency: "weekly", QuietHoursStart: "22:00", QuietHoursEnd: "07:00"},
	}

	for _, p := range prefs {
		var existing model.UserNotificationPreference
		if err := db.Where("user_id = ?", p.UserID).First(&existing).Error; err == nil {
			log.Printf("Preferences for '%s' already exist, skipping...", p.UserID)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating preferences for '%s': %v", p.UserID, err)
		} else {
			log.Printf("Created preferences for: %s", p.UserID)
		}
	}
}

func seedNotifications(db *gorm.DB) {
	var count int64
	db.Model(&model.Notification{}).Count(&count)
	if count > 0 {
		log.Printf("Notifications table already has %d rows, skipping...", count)
		return
	}

	now := time.Now().UTC()
	notifications := []model.Notification{
		{
			ID:              uuid.New(),
			Title:           "Scheduled maintenance tonight",
			Message:         "The dashboard will be read-only between 02:00 and 03:00 UTC.",
			Category:        "system",
			DeliveryMode:    "broadcast",
			Recipients:      datatypes.NewJSONSlice([]string{}),
			CreatedBy:       "auth0|admin-ops",
			SenderAvatarURL: strPtr("https://cdn.adminboard.dev/avatars/ops.png"),
			CreatedAt:       now.Add(-48 * time.Hour),
			UpdatedAt:       now.Add(-48 * time.Hour),
		},
		{
			ID:              uuid.New(),
			Title:           "Your export is ready",
			Message:         "The CSV export you requested has finished processing.",
			Category:        "updates",
			DeliveryMode:    "targeted",
			Recipients:      datatypes.NewJSONSlice([]string{"auth0|demo-alice"}),
			CreatedBy:       "auth0|admin-ops",
			SenderAvatarURL: strPtr("https://cdn.adminboard.dev/avatars/ops.png"),
			CreatedAt:       now.Add(-24 * time.Hour),
			UpdatedAt:       now.Add(-24 * time.Hour),
		},
		{
			ID:           uuid.New(),
			Title:        "New workspace features",
			Message:      "Saved filters and bulk actions are now available for all teams.",
			Category:     "marketing",
			DeliveryMode: "targeted",
			Recipients:   datatypes.NewJSONSlice([]string{"auth0|demo-alice", "auth0|demo-bob", "auth0|demo-carol"}),
			CreatedBy:    "auth0|admin-ops",
			CreatedAt:    now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
	}

	for _, n := range notifications {
		if err := db.Create(&n).Error; err != nil {
			log.Printf("Error creating notification '%s': %v", n.Title, err)
		} else {
			log.Printf("Created notification: %s", n.Title)
		}
	}
}
