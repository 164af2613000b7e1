// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// dashboard: headline totals and the 7-day chart series. Each function is
// context-aware and safe to call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// Overview holds the dashboard headline numbers.
type Overview struct {
	TotalUsers      int64 `json:"total_users"`
	PremiumUsers    int64 `json:"premium_users"`
	BannedUsers     int64 `json:"banned_users"`
	TodayRequests   int64 `json:"today_requests"`
	PendingPayments int64 `json:"pending_payments"`
	OpenTickets     int64 `json:"open_tickets"`
	TotalAgents     int64 `json:"total_agents"`
	OnlineAgents    int64 `json:"online_agents"`
}

// DayPoint is one (day, count) sample in a chart series.
type DayPoint struct {
	Day   string `json:"date"`
	Count int64  `json:"count"`
}

// OverviewStats computes the dashboard totals with one count per box.
// "Open" tickets are all tickets not yet resolved.
func OverviewStats(ctx context.Context, db *gorm.DB, now time.Time) (*Overview, error) {
	var o Overview
	q := db.WithContext(ctx)

	if err := q.Model(&domain.User{}).Count(&o.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.User{}).Where("is_premium = ?", true).Count(&o.PremiumUsers).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.User{}).Where("is_banned = ?", true).Count(&o.BannedUsers).Error; err != nil {
		return nil, err
	}

	today, err := SumUsageForDay(ctx, db, DayKey(now))
	if err != nil {
		return nil, err
	}
	o.TodayRequests = today

	if err := q.Model(&domain.PaymentProof{}).Where("status = ?", domain.PaymentStatusPending).Count(&o.PendingPayments).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.Ticket{}).Where("status != ?", domain.TicketStatusResolved).Count(&o.OpenTickets).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.Agent{}).Count(&o.TotalAgents).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&domain.Agent{}).Where("is_online = ?", true).Count(&o.OnlineAgents).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UserGrowthSeries returns new-user counts per day for the 7 days before
// now, oldest first.
func UserGrowthSeries(ctx context.Context, db *gorm.DB, now time.Time) ([]DayPoint, error) {
	out := make([]DayPoint, 0, 7)
	for i := 7; i > 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		var n int64
		err := db.WithContext(ctx).
			Model(&domain.User{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		out = append(out, DayPoint{Day: DayKey(day), Count: n})
	}
	return out, nil
}

// RequestSeries returns total request counts per day for the 7 days before
// now, oldest first.
func RequestSeries(ctx context.Context, db *gorm.DB, now time.Time) ([]DayPoint, error) {
	out := make([]DayPoint, 0, 7)
	for i := 7; i > 0; i-- {
		day := DayKey(now.AddDate(0, 0, -i))
		n, err := SumUsageForDay(ctx, db, day)
		if err != nil {
			return nil, err
		}
		out = append(out, DayPoint{Day: day, Count: n})
	}
	return out, nil
}

// AgentTicketCounts returns (assigned, resolved) ticket totals for one
// agents-table row, derived from the tickets table rather than the cached
// counters on Agent.
func AgentTicketCounts(ctx context.Context, db *gorm.DB, agentID uint) (assigned, resolved int64, err error) {
	q := db.WithContext(ctx).Model(&domain.Ticket{}).Where("assigned_agent_id = ?", agentID)
	if err = q.Count(&assigned).Error; err != nil {
		return 0, 0, err
	}
	err = db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("assigned_agent_id = ? AND status = ?", agentID, domain.TicketStatusResolved).
		Count(&resolved).Error
	return assigned, resolved, err
}
