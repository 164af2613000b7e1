// Package services – SettingsService
//
// This file implements the typed view over the untyped bot_settings rows.
// The dashboard edits individual keys; the bot reads a Snapshot per check so
// edits take effect immediately without a restart. Every key has an explicit
// default applied when the row is missing or unparsable, so a half-seeded
// table can never produce a zero ceiling or a zero-length flood window.
package services

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/sysutil"
)

// Settings is a typed snapshot of the global key/value configuration at one
// instant. It is a plain value; take a fresh one per check rather than
// holding on to it.
type Settings struct {
	MaintenanceMode  bool
	ForceJoinEnabled bool
	ForceJoinChannel string
	FreeLimit        int
	PremiumLimit     int
	// ReferralBonus is the bonus advertised per referral; ReferralsNeeded is
	// how many referrals earn a premium grant.
	ReferralBonus   int
	ReferralsNeeded int
	FloodThreshold  int
	FloodWindowSecs int
}

// SettingsService reads and writes the bot_settings table.
type SettingsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Snapshot loads every known key, applying defaults for missing or malformed
// values. Unknown keys in the table are ignored.
func (s *SettingsService) Snapshot(ctx context.Context) (Settings, error) {
	raw, err := repo.AllSettings(ctx, s.DB)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		MaintenanceMode:  sysutil.IsTruthy(raw["maintenance_mode"]),
		ForceJoinEnabled: sysutil.IsTruthy(raw["force_join_enabled"]),
		ForceJoinChannel: raw["force_join_channel"],
		FreeLimit:        intOr(raw["free_limit"], 10),
		PremiumLimit:     intOr(raw["premium_limit"], 1000),
		ReferralBonus:    intOr(raw["referral_bonus"], 5),
		ReferralsNeeded:  intOr(raw["premium_referrals_required"], 10),
		FloodThreshold:   intOr(raw["flood_threshold"], 5),
		FloodWindowSecs:  intOr(raw["flood_time"], 60),
	}, nil
}

// Set writes one raw key/value pair (dashboard use).
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return repo.SetSetting(ctx, s.DB, key, value)
}

// All returns the raw rows for rendering the settings page.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	return repo.AllSettings(ctx, s.DB)
}

// intOr parses v as a positive integer, falling back to def.
func intOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
