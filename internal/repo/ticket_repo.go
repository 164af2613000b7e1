// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for tickets and
// their message/attachment children.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/domain"
)

// TicketIDExists reports whether a ticket with the given public ID exists.
func TicketIDExists(ctx context.Context, db *gorm.DB, ticketID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("ticket_id = ?", ticketID).
		Count(&n).Error
	return n > 0, err
}

// CreateTicket inserts a new open ticket row.
func CreateTicket(ctx context.Context, db *gorm.DB, t *domain.Ticket) error {
	t.Status = domain.TicketStatusOpen
	t.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(t).Error
}

// GetTicket fetches a ticket by its public ID, or ErrNotFound.
func GetTicket(ctx context.Context, db *gorm.DB, ticketID string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, "ticket_id = ?", ticketID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListUserTickets returns all tickets owned by userID, newest first.
func ListUserTickets(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListOpenTickets returns every ticket not yet resolved, oldest first so
// agents work the queue in arrival order.
func ListOpenTickets(ctx context.Context, db *gorm.DB) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Where("status != ?", domain.TicketStatusResolved).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListTicketsPage returns a page of all tickets, newest first (dashboard).
func ListTicketsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAgentTickets returns tickets assigned to the given agents-table row.
func ListAgentTickets(ctx context.Context, db *gorm.DB, agentID uint) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Where("assigned_agent_id = ?", agentID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateTicketStatus writes the status; moving to resolved also stamps
// ResolvedAt. Returns ErrNotFound when the ticket does not exist.
func UpdateTicketStatus(ctx context.Context, db *gorm.DB, ticketID, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == domain.TicketStatusResolved {
		updates["resolved_at"] = time.Now().UTC()
	}
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("ticket_id = ?", ticketID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AssignTicket routes the ticket to an agent and bumps that agent's
// assigned-ticket counter in one transaction.
func AssignTicket(ctx context.Context, db *gorm.DB, ticketID string, agentID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Ticket{}).
			Where("ticket_id = ?", ticketID).
			Update("assigned_agent_id", agentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.Agent{}).
			Where("id = ?", agentID).
			UpdateColumn("assigned_tickets", gorm.Expr("assigned_tickets + 1")).Error
	})
}

// AddTicketMessage appends one message to the ticket thread. When the sender
// is an agent and the ticket has no first reply yet, FirstReplyAt is stamped.
func AddTicketMessage(ctx context.Context, db *gorm.DB, ticketID string, senderID int64, body string, senderIsAgent bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msg := domain.TicketMessage{
			TicketID:  ticketID,
			SenderID:  senderID,
			Body:      body,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		if !senderIsAgent {
			return nil
		}
		return tx.Model(&domain.Ticket{}).
			Where("ticket_id = ? AND first_reply_at IS NULL", ticketID).
			Update("first_reply_at", msg.CreatedAt).Error
	})
}

// ListTicketMessages returns the ticket thread in chronological order.
func ListTicketMessages(ctx context.Context, db *gorm.DB, ticketID string) ([]domain.TicketMessage, error) {
	var out []domain.TicketMessage
	err := db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// AddTicketAttachment appends an opaque media reference to the ticket.
func AddTicketAttachment(ctx context.Context, db *gorm.DB, a *domain.TicketAttachment) error {
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(a).Error
}

// ListTicketAttachments returns the ticket's attachments in upload order.
func ListTicketAttachments(ctx context.Context, db *gorm.DB, ticketID string) ([]domain.TicketAttachment, error) {
	var out []domain.TicketAttachment
	err := db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}
