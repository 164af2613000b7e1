// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for support agents
// and the FAQ table.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// AddAgent registers a Telegram user as an agent; re-adding is a no-op.
func AddAgent(ctx context.Context, db *gorm.DB, userID int64, role string) error {
	now := time.Now().UTC()
	a := domain.Agent{UserID: userID, Role: role, CreatedAt: now, LastActive: now}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&a).Error
}

// IsAgent reports whether the Telegram user is registered as an agent.
func IsAgent(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Agent{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n > 0, err
}

// GetAgentByUserID fetches the agent row for a Telegram user, or ErrNotFound.
func GetAgentByUserID(ctx context.Context, db *gorm.DB, userID int64) (*domain.Agent, error) {
	var a domain.Agent
	if err := db.WithContext(ctx).First(&a, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// LeastBusyOnlineAgent returns the online agent with the fewest assigned
// tickets (ties broken by storage order), or ErrNotFound when nobody is
// online.
func LeastBusyOnlineAgent(ctx context.Context, db *gorm.DB) (*domain.Agent, error) {
	var a domain.Agent
	err := db.WithContext(ctx).
		Where("is_online = ?", true).
		Order("assigned_tickets asc").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SetAgentOnline toggles availability and refreshes LastActive.
func SetAgentOnline(ctx context.Context, db *gorm.DB, userID int64, online bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Agent{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_online": online, "last_active": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAgents returns all agents, newest first.
func ListAgents(ctx context.Context, db *gorm.DB) ([]domain.Agent, error) {
	var out []domain.Agent
	err := db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, err
}

// SearchFAQ returns the first active FAQ entry for the language whose
// keyword list contains the query as a case-insensitive substring, or
// ErrNotFound. Matching is intentionally naive; the catalog is tiny.
func SearchFAQ(ctx context.Context, db *gorm.DB, query, language string) (*domain.FAQEntry, error) {
	var e domain.FAQEntry
	err := db.WithContext(ctx).
		Where("is_active = ? AND language = ? AND LOWER(keywords) LIKE ?",
			true, language, "%"+strings.ToLower(query)+"%").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AddFAQ inserts a canned answer.
func AddFAQ(ctx context.Context, db *gorm.DB, keywords, answer, language string) error {
	e := domain.FAQEntry{
		Keywords:  keywords,
		Answer:    answer,
		Language:  language,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&e).Error
}
