// Package services – TicketService
//
// This file implements the support ticket workflow: ID generation, creation
// with automatic assignment to the least loaded online agent, message and
// attachment threading, and status transitions. Ticket IDs are short opaque
// tokens the user can quote back in chat, not database row IDs.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/repo"
)

const (
	ticketIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ticketIDLength   = 8
	ticketIDRetries  = 10
)

// TicketService manages support tickets and the agent pool.
type TicketService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Rand sources ticket ID bytes, overridable in tests. Nil means
	// crypto/rand.
	Rand io.Reader

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *TicketService) randRead(buf []byte) error {
	r := io.Reader(rand.Reader)
	if s.Rand != nil {
		r = s.Rand
	}
	_, err := io.ReadFull(r, buf)
	return err
}

func (s *TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewTicketID generates a random 8-character uppercase alphanumeric ID that
// does not collide with an existing ticket. After ten collisions in a row it
// gives up with ErrTicketIDExhausted.
func (s *TicketService) NewTicketID(ctx context.Context) (string, error) {
	buf := make([]byte, ticketIDLength)
	for attempt := 0; attempt < ticketIDRetries; attempt++ {
		if err := s.randRead(buf); err != nil {
			return "", err
		}
		id := make([]byte, ticketIDLength)
		for i, b := range buf {
			id[i] = ticketIDAlphabet[int(b)%len(ticketIDAlphabet)]
		}
		exists, err := repo.TicketIDExists(ctx, s.DB, string(id))
		if err != nil {
			return "", err
		}
		if !exists {
			return string(id), nil
		}
	}
	return "", ErrTicketIDExhausted
}

// Open creates a ticket with its first message and, when an online agent is
// available, assigns it to the one carrying the fewest tickets. A missing
// agent pool is not an error; the ticket stays unassigned until an agent
// comes online and picks it up.
func (s *TicketService) Open(ctx context.Context, userID int64, subject, body string) (*domain.Ticket, error) {
	id, err := s.NewTicketID(ctx)
	if err != nil {
		return nil, err
	}
	t := &domain.Ticket{
		TicketID: id,
		UserID:   userID,
		Subject:  subject,
		Priority: "normal",
	}
	if err := repo.CreateTicket(ctx, s.DB, t); err != nil {
		return nil, err
	}
	if body != "" {
		if err := repo.AddTicketMessage(ctx, s.DB, t.TicketID, userID, body, false); err != nil {
			return nil, err
		}
	}

	agent, err := repo.LeastBusyOnlineAgent(ctx, s.DB)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return t, nil
		}
		return nil, err
	}
	if err := repo.AssignTicket(ctx, s.DB, t.TicketID, agent.ID); err != nil {
		return nil, err
	}
	t.AssignedAgentID = &agent.ID
	return t, nil
}

// Get resolves a ticket by its public 8-character ID.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	t, err := repo.GetTicket(ctx, s.DB, ticketID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTicketNotFound
	}
	return t, err
}

// AddUserMessage appends a message from the ticket owner.
func (s *TicketService) AddUserMessage(ctx context.Context, ticketID string, body string) error {
	t, err := s.Get(ctx, ticketID)
	if err != nil {
		return err
	}
	return repo.AddTicketMessage(ctx, s.DB, t.TicketID, t.UserID, body, false)
}

// AddAgentReply appends a message from an agent. The first agent reply on a
// ticket stamps its first-reply time, which feeds the SLA view.
func (s *TicketService) AddAgentReply(ctx context.Context, ticketID string, agentUserID int64, body string) error {
	ok, err := repo.IsAgent(ctx, s.DB, agentUserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAgent
	}
	t, err := s.Get(ctx, ticketID)
	if err != nil {
		return err
	}
	return repo.AddTicketMessage(ctx, s.DB, t.TicketID, agentUserID, body, true)
}

// AttachFile records a Telegram file reference on the ticket.
func (s *TicketService) AttachFile(ctx context.Context, ticketID string, a domain.TicketAttachment) error {
	t, err := s.Get(ctx, ticketID)
	if err != nil {
		return err
	}
	a.TicketID = t.TicketID
	return repo.AddTicketAttachment(ctx, s.DB, &a)
}

// Thread returns the ticket's messages oldest first.
func (s *TicketService) Thread(ctx context.Context, ticketID string) ([]domain.TicketMessage, error) {
	t, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return repo.ListTicketMessages(ctx, s.DB, t.TicketID)
}

// Attachments returns the ticket's stored file references.
func (s *TicketService) Attachments(ctx context.Context, ticketID string) ([]domain.TicketAttachment, error) {
	t, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return repo.ListTicketAttachments(ctx, s.DB, t.TicketID)
}

// SetStatus moves a ticket between open, resolved, and closed.
func (s *TicketService) SetStatus(ctx context.Context, ticketID, status string) error {
	switch status {
	case domain.TicketStatusOpen, domain.TicketStatusResolved, domain.TicketStatusClosed:
	default:
		return ErrBadStatus
	}
	err := repo.UpdateTicketStatus(ctx, s.DB, ticketID, status)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTicketNotFound
	}
	return err
}

// UserTickets lists a user's tickets newest first.
func (s *TicketService) UserTickets(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return repo.ListUserTickets(ctx, s.DB, userID)
}

// AgentQueue lists the tickets currently assigned to the agent with the given
// Telegram user ID. A non-agent caller gets ErrNotAgent.
func (s *TicketService) AgentQueue(ctx context.Context, agentUserID int64) ([]domain.Ticket, error) {
	a, err := repo.GetAgentByUserID(ctx, s.DB, agentUserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotAgent
		}
		return nil, err
	}
	return repo.ListAgentTickets(ctx, s.DB, a.ID)
}

// AddAgent enrolls a Telegram user into the agent pool. Adding an existing
// agent is a no-op. An empty role defaults to support.
func (s *TicketService) AddAgent(ctx context.Context, userID int64, role string) error {
	if role == "" {
		role = "support"
	}
	return repo.AddAgent(ctx, s.DB, userID, role)
}

// SetAgentOnline flips the agent's availability. Only online agents receive
// automatic assignments.
func (s *TicketService) SetAgentOnline(ctx context.Context, agentUserID int64, online bool) error {
	err := repo.SetAgentOnline(ctx, s.DB, agentUserID, online)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotAgent
	}
	return err
}

// AnswerFAQ looks up a canned answer matching the user's question in their
// language. A nil entry with nil error means nothing matched and the caller
// should offer to open a ticket instead.
func (s *TicketService) AnswerFAQ(ctx context.Context, question, language string) (*domain.FAQEntry, error) {
	e, err := repo.SearchFAQ(ctx, s.DB, question, language)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

// AddFAQ stores a new canned answer (admin use).
func (s *TicketService) AddFAQ(ctx context.Context, keywords, answer, language string) error {
	return repo.AddFAQ(ctx, s.DB, keywords, answer, language)
}
