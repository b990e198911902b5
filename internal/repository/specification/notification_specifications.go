package specification

import (
	"encoding/json"

	"gorm.io/gorm"
)

// VisibleTo keeps broadcast notifications plus targeted ones that list the
// user as a recipient. Recipients are stored as a JSONB array, so membership
// is a containment check.
type VisibleTo struct {
	UserID string
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	needle, _ := json.Marshal([]string{s.UserID})
	return db.Where("delivery_mode = ? OR recipients @> ?::jsonb", "broadcast", string(needle))
}

// NewestFirst gives the deterministic inbox order: creation time descending,
// id descending as the tie break. Repeated reads without intervening writes
// return the same sequence, which keeps pagination stable.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// ByCategory filters notifications by category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// UnreadBy keeps notifications with no read receipt for the user.
type UnreadBy struct {
	UserID string
}

func (s UnreadBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"NOT EXISTS (SELECT 1 FROM notification_read_receipts r WHERE r.notification_id = notifications.id AND r.user_id = ?)",
		s.UserID,
	)
}
