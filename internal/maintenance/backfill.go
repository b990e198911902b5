// Package maintenance holds the idempotent data-repair jobs for historical
// notification records. Every job patches record-at-a-time with a conditional
// update, so it tolerates concurrent send/mark-read traffic, survives being
// abandoned halfway, and produces the same end state when re-run.
package maintenance

import (
	"context"
	"strings"

	"adminboard-be/internal/model"
	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/pkg/directory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityPrefix is the provider prefix of normalized sender identifiers.
// Legacy records written before the identity migration carry the bare
// provider-local id.
const IdentityPrefix = "auth0|"

const scanPageSize = 500

type Result struct {
	Scanned int
	Patched int
	Skipped int
}

type Backfiller struct {
	db        *gorm.DB
	directory directory.Directory
	logger    logger.ILogger
	dryRun    bool
}

func NewBackfiller(db *gorm.DB, dir directory.Directory, log logger.ILogger, dryRun bool) *Backfiller {
	return &Backfiller{
		db:        db,
		directory: dir,
		logger:    log,
		dryRun:    dryRun,
	}
}

// BackfillSenderIDs normalizes legacy created_by values to the prefixed
// form. Values already containing a provider separator pass through
// unchanged, so a second run over the same data is a no-op.
func (b *Backfiller) BackfillSenderIDs(ctx context.Context) (Result, error) {
	var result Result
	lastID := uuid.Nil

	for {
		// Keyset scan: patched rows drop out of the predicate, and the id
		// cursor guarantees progress even when a row is skipped.
		var batch []model.Notification
		err := b.db.WithContext(ctx).
			Select("id", "created_by").
			Where("created_by NOT LIKE ? AND id > ?", "%|%", lastID).
			Order("id ASC").
			Limit(scanPageSize).
			Find(&batch).Error
		if err != nil {
			return result, apperrors.NewStorage(err)
		}
		if len(batch) == 0 {
			return result, nil
		}

		for _, n := range batch {
			lastID = n.ID
			result.Scanned++
			if strings.Contains(n.CreatedBy, "|") {
				result.Skipped++
				continue
			}
			if b.dryRun {
				result.Patched++
				continue
			}

			// Compare-and-swap on the previous value: a record touched by
			// someone else since the scan is simply left for the next run.
			res := b.db.WithContext(ctx).
				Model(&model.Notification{}).
				Where("id = ? AND created_by = ?", n.ID, n.CreatedBy).
				Update("created_by", IdentityPrefix+n.CreatedBy)
			if res.Error != nil {
				return result, apperrors.NewStorage(res.Error)
			}
			if res.RowsAffected > 0 {
				result.Patched++
			} else {
				result.Skipped++
			}
		}
	}
}

// BackfillSenderAvatars fills the denormalized sender avatar for records
// where it is currently empty. A previously captured avatar is a point-in-time
// snapshot and is never overwritten, so re-running changes nothing.
func (b *Backfiller) BackfillSenderAvatars(ctx context.Context) (Result, error) {
	var result Result
	lastID := uuid.Nil

	for {
		var batch []model.Notification
		err := b.db.WithContext(ctx).
			Select("id", "created_by").
			Where("(sender_avatar_url IS NULL OR sender_avatar_url = '') AND id > ?", lastID).
			Order("id ASC").
			Limit(scanPageSize).
			Find(&batch).Error
		if err != nil {
			return result, apperrors.NewStorage(err)
		}
		if len(batch) == 0 {
			return result, nil
		}

		for _, n := range batch {
			lastID = n.ID
			result.Scanned++

			profile, err := b.directory.Lookup(ctx, n.CreatedBy)
			if err != nil {
				// Directory outage: skip the record, the next run picks it up.
				b.logger.Warn("Backfiller", "Directory lookup failed, skipping record", map[string]interface{}{
					"notification_id": n.ID.String(),
					"created_by":      n.CreatedBy,
					"error":           err.Error(),
				})
				result.Skipped++
				continue
			}
			if !profile.Exists || profile.ProfilePictureURL == "" {
				// Absence means "no avatar", never an error.
				result.Skipped++
				continue
			}
			if b.dryRun {
				result.Patched++
				continue
			}

			// Conditional on still-empty, so a concurrent writer (or an
			// earlier partial run) is never overwritten.
			res := b.db.WithContext(ctx).
				Model(&model.Notification{}).
				Where("id = ? AND (sender_avatar_url IS NULL OR sender_avatar_url = '')", n.ID).
				Update("sender_avatar_url", profile.ProfilePictureURL)
			if res.Error != nil {
				return result, apperrors.NewStorage(res.Error)
			}
			if res.RowsAffected > 0 {
				result.Patched++
			} else {
				result.Skipped++
			}
		}
	}
}
