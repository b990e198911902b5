package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"adminboard-be/internal/maintenance"
	"adminboard-be/internal/model"
	"adminboard-be/pkg/directory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type staticDirectory struct {
	profiles map[string]directory.Profile
	err      error
}

func (d *staticDirectory) Lookup(ctx context.Context, userID string) (directory.Profile, error) {
	if d.err != nil {
		return directory.Profile{}, d.err
	}
	return d.profiles[userID], nil
}

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error {
	return nil
}

func insertLegacyNotification(t *testing.T, db *gorm.DB, createdBy string, avatar *string) uuid.UUID {
	t.Helper()
	n := model.Notification{
		ID:              uuid.New(),
		Title:           "Legacy row",
		Message:         "Inserted by the backfill suite.",
		Category:        "system",
		DeliveryMode:    "broadcast",
		Recipients:      datatypes.NewJSONSlice([]string{}),
		CreatedBy:       createdBy,
		SenderAvatarURL: avatar,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	require.NoError(t, db.Create(&n).Error)
	cleanupNotification(t, db, n.ID)
	return n.ID
}

func fetchNotification(t *testing.T, db *gorm.DB, id uuid.UUID) model.Notification {
	t.Helper()
	var n model.Notification
	require.NoError(t, db.Where("id = ?", id).First(&n).Error)
	return n
}

func TestBackfillSenderIDs(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	legacyID := insertLegacyNotification(t, db, "legacy-admin", nil)
	modernID := insertLegacyNotification(t, db, "auth0|already-prefixed", nil)

	b := maintenance.NewBackfiller(db, &staticDirectory{}, silentLogger{}, false)

	_, err := b.BackfillSenderIDs(ctx)
	require.NoError(t, err)

	assert.Equal(t, "auth0|legacy-admin", fetchNotification(t, db, legacyID).CreatedBy)
	assert.Equal(t, "auth0|already-prefixed", fetchNotification(t, db, modernID).CreatedBy)

	// Second run reaches the same fixed point: no double prefix.
	_, err = b.BackfillSenderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auth0|legacy-admin", fetchNotification(t, db, legacyID).CreatedBy)
}

func TestBackfillSenderIDsDryRun(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	legacyID := insertLegacyNotification(t, db, "dryrun-admin", nil)

	b := maintenance.NewBackfiller(db, &staticDirectory{}, silentLogger{}, true)
	res, err := b.BackfillSenderIDs(ctx)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Patched, 1, "dry run must report the pending patch")
	assert.Equal(t, "dryrun-admin", fetchNotification(t, db, legacyID).CreatedBy, "dry run must not write")
}

func TestBackfillSenderAvatars(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	existing := "https://cdn.example/original.png"
	emptyID := insertLegacyNotification(t, db, "auth0|with-avatar", nil)
	snapshotID := insertLegacyNotification(t, db, "auth0|with-avatar", &existing)
	orphanID := insertLegacyNotification(t, db, "auth0|departed", nil)

	dir := &staticDirectory{profiles: map[string]directory.Profile{
		"auth0|with-avatar": {Exists: true, ProfilePictureURL: "https://cdn.example/current.png"},
		"auth0|departed":    {Exists: false},
	}}

	b := maintenance.NewBackfiller(db, dir, silentLogger{}, false)
	_, err := b.BackfillSenderAvatars(ctx)
	require.NoError(t, err)

	filled := fetchNotification(t, db, emptyID)
	require.NotNil(t, filled.SenderAvatarURL)
	assert.Equal(t, "https://cdn.example/current.png", *filled.SenderAvatarURL)

	// Snapshot semantics: a captured avatar is never overwritten, even
	// when the directory now reports a different picture.
	kept := fetchNotification(t, db, snapshotID)
	require.NotNil(t, kept.SenderAvatarURL)
	assert.Equal(t, existing, *kept.SenderAvatarURL)

	// Departed users simply stay avatarless.
	orphan := fetchNotification(t, db, orphanID)
	assert.True(t, orphan.SenderAvatarURL == nil || *orphan.SenderAvatarURL == "")

	// Idempotence: a second run leaves the filled value alone.
	dir.profiles["auth0|with-avatar"] = directory.Profile{Exists: true, ProfilePictureURL: "https://cdn.example/changed-again.png"}
	_, err = b.BackfillSenderAvatars(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/current.png", *fetchNotification(t, db, emptyID).SenderAvatarURL)
}

func TestBackfillSenderAvatarsSurvivesDirectoryOutage(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	pendingID := insertLegacyNotification(t, db, "auth0|unreachable", nil)

	b := maintenance.NewBackfiller(db, &staticDirectory{err: errors.New("directory down")}, silentLogger{}, false)
	_, err := b.BackfillSenderAvatars(ctx)
	require.NoError(t, err, "an outage skips records instead of failing the job")

	pending := fetchNotification(t, db, pendingID)
	assert.True(t, pending.SenderAvatarURL == nil || *pending.SenderAvatarURL == "")
}
