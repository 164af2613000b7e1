// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// UpsertUser inserts the user on first contact and refreshes LastActive (and
// profile fields) on every later one. The referrer reference is only written
// on insert; an existing user can never gain one retroactively.
func UpsertUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.LastActive = now
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"username":      u.Username,
			"first_name":    u.FirstName,
			"language_code": u.LanguageCode,
			"last_active":   now,
		}),
	}).Create(u).Error
}

// GetUser fetches a user by Telegram ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id int64) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsersPage returns a page of users ordered by creation time descending.
func ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListBroadcastTargets returns every non-banned user, for broadcasting.
func ListBroadcastTargets(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).Where("is_banned = ?", false).Find(&out).Error
	return out, err
}

// SetPremium writes the premium flag and clears any expiry. If no rows are
// affected the user does not exist and ErrNotFound is returned.
func SetPremium(ctx context.Context, db *gorm.DB, id int64, premium bool) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_premium": premium, "premium_expiry": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPremiumUntil grants premium with a fixed expiry instant.
func SetPremiumUntil(ctx context.Context, db *gorm.DB, id int64, expiry time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_premium": true, "premium_expiry": expiry})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearPremium drops the premium flag and its expiry.
func ClearPremium(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_premium": false, "premium_expiry": nil})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetLanguage writes the user's preferred catalog language.
func SetLanguage(ctx context.Context, db *gorm.DB, id int64, lang string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("language_code", lang)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetBanned writes the ban flag.
func SetBanned(ctx context.Context, db *gorm.DB, id int64, banned bool) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordReferral appends the referral row, stamps the referred user's
// referred_by back-reference, and bumps the referrer's denormalized counter,
// all inside one transaction so the counter can always be reconciled from
// the referrals table.
func RecordReferral(ctx context.Context, db *gorm.DB, referrerID, referredID int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := domain.Referral{
			ReferrerID: referrerID,
			ReferredID: referredID,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		err := tx.Model(&domain.User{}).
			Where("id = ? AND referred_by IS NULL", referredID).
			Update("referred_by", referrerID).Error
		if err != nil {
			return err
		}
		return tx.Model(&domain.User{}).
			Where("id = ?", referrerID).
			UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error
	})
}

// CountReferrals derives the referral count from the relationship table
// (reconciliation path for the denormalized counter on User).
func CountReferrals(ctx context.Context, db *gorm.DB, referrerID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&n).Error
	return n, err
}

// AddPaymentProof stores a submitted payment screenshot reference with
// pending status.
func AddPaymentProof(ctx context.Context, db *gorm.DB, userID int64, fileID, fileUniqueID string) error {
	p := domain.PaymentProof{
		UserID:       userID,
		FileID:       fileID,
		FileUniqueID: fileUniqueID,
		Status:       domain.PaymentStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&p).Error
}

// UpdateLatestPaymentStatus resolves the user's most recent pending proof.
func UpdateLatestPaymentStatus(ctx context.Context, db *gorm.DB, userID int64, status string) error {
	var p domain.PaymentProof
	err := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.PaymentStatusPending).
		Order("created_at desc").
		First(&p).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.PaymentProof{}).
		Where("id = ?", p.ID).
		Update("status", status).Error
}
