// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the key/value settings rows that back
// the typed services.SettingsService snapshot.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// GetSetting returns the raw value for a key, or ErrNotFound.
func GetSetting(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var s domain.Setting
	if err := db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

// SetSetting writes a key/value pair, inserting or replacing.
func SetSetting(ctx context.Context, db *gorm.DB, key, value string) error {
	s := domain.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": s.UpdatedAt}),
	}).Create(&s).Error
}

// AllSettings returns every settings row as a map.
func AllSettings(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var rows []domain.Setting
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}
