// Package services – AccountService
//
// This file owns the user lifecycle: registration on first contact, referral
// credit and the premium promotion it can trigger, premium expiry, and bans.
// Premium expiry is evaluated lazily on read; an expired flag is cleared in
// the database the first time it is observed so the dashboard and the bot
// agree on the user's standing.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/repo"
)

// Notifier delivers out-of-band events to a Telegram user. Implementations
// log their own delivery failures; a failed notification never fails the
// surrounding write.
type Notifier interface {
	PremiumGranted(chatID int64, until time.Time)
}

// AccountService manages users, referrals, and premium standing.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Settings supplies the referral promotion threshold.
	Settings *SettingsService

	// Notifier, when set, is told about referral promotions. Best effort.
	Notifier Notifier

	// PremiumDays is the length of a referral-earned premium grant.
	PremiumDays int

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register upserts the user from a Telegram update, refreshing the profile
// fields and last-active stamp on every contact.
func (s *AccountService) Register(ctx context.Context, id int64, username, firstName, langCode string) (*domain.User, error) {
	u := &domain.User{
		ID:           id,
		Username:     username,
		FirstName:    firstName,
		LanguageCode: langCode,
		LastActive:   s.now(),
	}
	if err := repo.UpsertUser(ctx, s.DB, u); err != nil {
		return nil, err
	}
	return repo.GetUser(ctx, s.DB, id)
}

// Get fetches a user, mapping a missing row to ErrUserNotFound.
func (s *AccountService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// RecordReferral credits referrerID for inviting referredID. Self-referrals
// and already-referred users are silently dropped. Reaching the configured
// threshold grants the referrer a premium period and notifies them; while a
// grant is active further referrals only accrue the counter, but once it
// lapses the next referral re-grants.
func (s *AccountService) RecordReferral(ctx context.Context, referrerID, referredID int64) error {
	if referrerID == referredID {
		return nil
	}
	referred, err := repo.GetUser(ctx, s.DB, referredID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if referred.ReferredBy != nil {
		return nil
	}
	referrer, err := repo.GetUser(ctx, s.DB, referrerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := repo.RecordReferral(ctx, s.DB, referrerID, referredID); err != nil {
		return err
	}

	cfg, err := s.Settings.Snapshot(ctx)
	if err != nil {
		return err
	}
	// Every qualifying sign-up past the threshold can re-grant a referrer
	// whose earlier premium period has lapsed.
	total := referrer.ReferralCount + 1
	if total < cfg.ReferralsNeeded {
		return nil
	}
	if referrer.PremiumActive(s.now()) {
		return nil
	}
	until := s.now().AddDate(0, 0, s.premiumDays())
	if err := repo.SetPremiumUntil(ctx, s.DB, referrerID, until); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.PremiumGranted(referrerID, until)
	}
	return nil
}

func (s *AccountService) premiumDays() int {
	if s.PremiumDays > 0 {
		return s.PremiumDays
	}
	return 30
}

// IsPremium reports whether the user's premium standing is active now. An
// expired grant is cleared in the database before reporting false.
func (s *AccountService) IsPremium(ctx context.Context, id int64) (bool, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	if u.IsPremium && u.PremiumExpiry != nil && !u.PremiumExpiry.After(s.now()) {
		if err := repo.ClearPremium(ctx, s.DB, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return u.PremiumActive(s.now()), nil
}

// GrantPremium gives a user premium until the given time, or indefinitely
// when until is the zero value.
func (s *AccountService) GrantPremium(ctx context.Context, id int64, until time.Time) error {
	var err error
	if until.IsZero() {
		err = repo.SetPremium(ctx, s.DB, id, true)
	} else {
		err = repo.SetPremiumUntil(ctx, s.DB, id, until)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// RevokePremium removes a user's premium standing.
func (s *AccountService) RevokePremium(ctx context.Context, id int64) error {
	err := repo.ClearPremium(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// SetBanned flips a user's ban flag.
func (s *AccountService) SetBanned(ctx context.Context, id int64, banned bool) error {
	err := repo.SetBanned(ctx, s.DB, id, banned)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// EnsureUsable verifies the user exists and is not banned.
func (s *AccountService) EnsureUsable(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsBanned {
		return nil, ErrBanned
	}
	return u, nil
}
