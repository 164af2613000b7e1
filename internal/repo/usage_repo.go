// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the daily usage counter and the
// fixed-window flood counter.
//
// The usage increment is a single upsert (insert count=1, or add 1 on
// conflict) so concurrent increments for the same (user, day) cannot lose
// updates. The flood check is deliberately read-then-write: the admitted
// cross-boundary burst is documented behavior of the fixed-window scheme.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// DayKey formats an instant as the calendar-day key used by the usage table.
// The boundary is the server's local midnight, not the user's.
func DayKey(t time.Time) string { return t.Format("2006-01-02") }

// DailyUsage returns the user's action count for the given day key.
// A missing row reads as zero.
func DailyUsage(ctx context.Context, db *gorm.DB, userID int64, day string) (int, error) {
	var row domain.UsageCounter
	err := db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return row.Count, nil
}

// IncrementUsage bumps the user's counter for the given day atomically:
// the row is created with count=1 when absent, otherwise count increases
// by one, in a single statement under SQLite's native atomicity.
func IncrementUsage(ctx context.Context, db *gorm.DB, userID int64, day string) error {
	row := domain.UsageCounter{UserID: userID, Day: day, Count: 1}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&row).Error
}

// SumUsageForDay totals all users' counters for one day (dashboard stats).
func SumUsageForDay(ctx context.Context, db *gorm.DB, day string) (int64, error) {
	var row struct{ Total *int64 }
	err := db.WithContext(ctx).
		Model(&domain.UsageCounter{}).
		Select("SUM(count) as total").
		Where("day = ?", day).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.Total == nil {
		return 0, nil
	}
	return *row.Total, nil
}

// CheckFlood applies the fixed-window burst limiter for one user and reports
// (flooding, secondsToWait).
//
// Semantics:
//   - no row: create (count=1, window=now), allow
//   - window elapsed (now - start > window): reset to (1, now), allow
//   - count >= threshold: reject; wait = window - elapsed, truncated
//   - otherwise: increment, allow
//
// A window boundary therefore admits up to 2×threshold−1 requests in quick
// succession; that inaccuracy is accepted, not a bug.
func CheckFlood(ctx context.Context, db *gorm.DB, userID int64, threshold int, window time.Duration) (bool, int, error) {
	now := time.Now().UTC()

	var fw domain.FloodWindow
	err := db.WithContext(ctx).First(&fw, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		fw = domain.FloodWindow{UserID: userID, RequestCount: 1, WindowStart: now}
		if err := db.WithContext(ctx).Create(&fw).Error; err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}

	elapsed := now.Sub(fw.WindowStart)
	if elapsed > window {
		err := db.WithContext(ctx).
			Model(&domain.FloodWindow{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{"request_count": 1, "window_start": now}).Error
		if err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}

	if fw.RequestCount >= threshold {
		wait := int((window - elapsed).Seconds())
		return true, wait, nil
	}

	err = db.WithContext(ctx).
		Model(&domain.FloodWindow{}).
		Where("user_id = ?", userID).
		UpdateColumn("request_count", gorm.Expr("request_count + 1")).Error
	if err != nil {
		return false, 0, err
	}
	return false, 0, nil
}
