// Package services – QuotaService
//
// This file enforces the two per-user request limits: the short fixed-window
// flood check and the daily ceiling. Both are evaluated before a thumbnail is
// produced; the daily counter is only incremented after at least one image was
// actually delivered, so transient Telegram failures never burn quota.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/repo"
)

// QuotaService answers "may this user make a request right now".
type QuotaService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Settings supplies the current limits per check.
	Settings *SettingsService

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *QuotaService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// QuotaStatus describes a user's standing against today's ceiling.
type QuotaStatus struct {
	Used      int
	Limit     int
	Remaining int
}

// Check runs the flood window first and the daily ceiling second. A flood
// rejection returns ErrFlooding together with the whole seconds left in the
// window; an exhausted ceiling returns ErrQuotaExceeded. On success the
// returned status reflects usage before the pending request.
func (s *QuotaService) Check(ctx context.Context, userID int64, premium bool) (QuotaStatus, int, error) {
	cfg, err := s.Settings.Snapshot(ctx)
	if err != nil {
		return QuotaStatus{}, 0, err
	}
	flooding, wait, err := repo.CheckFlood(ctx, s.DB, userID, cfg.FloodThreshold, time.Duration(cfg.FloodWindowSecs)*time.Second)
	if err != nil {
		return QuotaStatus{}, 0, err
	}
	if flooding {
		return QuotaStatus{}, wait, ErrFlooding
	}

	limit := cfg.FreeLimit
	if premium {
		limit = cfg.PremiumLimit
	}
	used, err := repo.DailyUsage(ctx, s.DB, userID, repo.DayKey(s.now()))
	if err != nil {
		return QuotaStatus{}, 0, err
	}
	st := QuotaStatus{Used: used, Limit: limit, Remaining: limit - used}
	if st.Remaining < 0 {
		st.Remaining = 0
	}
	if used >= limit {
		return st, 0, ErrQuotaExceeded
	}
	return st, 0, nil
}

// Consume records one completed request against today's counter.
func (s *QuotaService) Consume(ctx context.Context, userID int64) error {
	return repo.IncrementUsage(ctx, s.DB, userID, repo.DayKey(s.now()))
}

// Status reports usage without touching the flood window, for /stats.
func (s *QuotaService) Status(ctx context.Context, userID int64, premium bool) (QuotaStatus, error) {
	cfg, err := s.Settings.Snapshot(ctx)
	if err != nil {
		return QuotaStatus{}, err
	}
	limit := cfg.FreeLimit
	if premium {
		limit = cfg.PremiumLimit
	}
	used, err := repo.DailyUsage(ctx, s.DB, userID, repo.DayKey(s.now()))
	if err != nil {
		return QuotaStatus{}, err
	}
	st := QuotaStatus{Used: used, Limit: limit, Remaining: limit - used}
	if st.Remaining < 0 {
		st.Remaining = 0
	}
	return st, nil
}
