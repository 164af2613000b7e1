package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
	"github.com/grabthumb/thumbbot/internal/sysutil"
)

// userTicketLimit caps the "my tickets" listing; agents see a slightly
// larger window of the open queue.
const (
	userTicketLimit  = 10
	agentQueueLimit  = 15
	attachmentsLimit = 10
)

// answerFAQ searches the keyword table for the user's language; a miss
// offers to open a ticket instead.
func (b *Bot) answerFAQ(ctx context.Context, user *domain.User, chatID int64, question string) {
	entry, err := b.tickets.AnswerFAQ(ctx, question, i18n.Resolve(user.LanguageCode))
	if err != nil {
		b.log.Error().Err(err).Msg("faq search")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	b.states.clear(chatID)
	if entry == nil {
		b.sendKB(chatID, b.tr(user, "faq_no_match"), b.supportKeyboard(user))
		return
	}
	b.sendKB(chatID, entry.Answer, b.supportKeyboard(user))
}

func (b *Bot) openTicket(ctx context.Context, user *domain.User, chatID int64, subject, body string) {
	t, err := b.tickets.Open(ctx, user.ID, subject, body)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("open ticket")
		b.send(chatID, b.tr(user, "error"))
		b.states.clear(chatID)
		return
	}

	ticketsOpened.Inc()
	b.send(chatID, b.trf(user, "ticket_created", map[string]string{"ticket_id": t.TicketID}))
	b.states.set(chatID, conversation{State: stateTicketAttach, TicketID: t.TicketID})
	b.sendKB(chatID, b.tr(user, "ticket_ask_attach"), b.doneKeyboard(user))

	if t.AssignedAgentID != nil {
		b.notifyAssignedAgent(ctx, t)
	}
}

// notifyAssignedAgent tells the routed agent a new ticket landed in their
// queue. Best effort.
func (b *Bot) notifyAssignedAgent(ctx context.Context, t *domain.Ticket) {
	var agent domain.Agent
	if err := b.db.WithContext(ctx).First(&agent, *t.AssignedAgentID).Error; err != nil {
		b.log.Warn().Err(err).Str("ticket_id", t.TicketID).Msg("assigned agent lookup")
		return
	}
	b.send(agent.UserID, "🎫 New ticket "+t.TicketID+": "+t.Subject)
}

// attachToTicket stores the media reference on the draft ticket. The state
// stays in stateTicketAttach so several screenshots can follow.
func (b *Bot) attachToTicket(ctx context.Context, user *domain.User, m *tgbotapi.Message, conv conversation) {
	chatID := m.Chat.ID
	fileID, fileUniqueID := mediaRef(m)
	if fileID == "" || conv.TicketID == "" {
		b.send(chatID, b.tr(user, "ticket_ask_attach"))
		return
	}

	existing, err := b.tickets.Attachments(ctx, conv.TicketID)
	if err == nil && len(existing) >= attachmentsLimit {
		b.sendKB(chatID, b.tr(user, "ticket_ask_attach"), b.doneKeyboard(user))
		return
	}

	att := domain.TicketAttachment{
		FileID:       fileID,
		FileUniqueID: fileUniqueID,
		FileType:     mediaType(m),
		FileName:     mediaName(m),
	}
	if err := b.tickets.AttachFile(ctx, conv.TicketID, att); err != nil {
		b.log.Error().Err(err).Str("ticket_id", conv.TicketID).Msg("attach file")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	b.sendKB(chatID, b.tr(user, "ticket_ask_attach"), b.doneKeyboard(user))
}

func mediaType(m *tgbotapi.Message) string {
	if len(m.Photo) > 0 {
		return "photo"
	}
	if m.Document != nil {
		return "document"
	}
	return "unknown"
}

func mediaName(m *tgbotapi.Message) string {
	if m.Document != nil {
		return sysutil.FirstNonEmpty(m.Document.FileName, "document")
	}
	return "screenshot.jpg"
}

func (b *Bot) listUserTickets(ctx context.Context, user *domain.User, chatID int64) {
	list, err := b.tickets.UserTickets(ctx, user.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("list tickets")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	if len(list) == 0 {
		b.send(chatID, b.tr(user, "ticket_list_empty"))
		return
	}
	if len(list) > userTicketLimit {
		list = list[:userTicketLimit]
	}

	lines := make([]string, 0, len(list))
	for _, t := range list {
		lines = append(lines, b.trf(user, "ticket_status_line", map[string]string{
			"ticket_id": t.TicketID,
			"status":    t.Status,
			"subject":   t.Subject,
		}))
	}
	b.send(chatID, strings.Join(lines, "\n"))
}

// showAgentPanel renders the agent keyboard with the agent's current queue.
func (b *Bot) showAgentPanel(ctx context.Context, user *domain.User, chatID int64) {
	queue, err := b.tickets.AgentQueue(ctx, user.ID)
	if errors.Is(err, services.ErrNotAgent) {
		b.send(chatID, b.tr(user, "not_an_agent"))
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("agent queue")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	agent, err := repo.GetAgentByUserID(ctx, b.db, user.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("agent lookup")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	b.sendKB(chatID, b.tr(user, "agent_menu"), b.agentKeyboard(user, agent.IsOnline))

	if assigned, resolved, err := repo.AgentTicketCounts(ctx, b.db, agent.ID); err == nil {
		b.send(chatID, b.trf(user, "agent_stats", map[string]string{
			"assigned": strconv.FormatInt(assigned, 10),
			"resolved": strconv.FormatInt(resolved, 10),
		}))
	}

	if len(queue) == 0 {
		b.send(chatID, b.tr(user, "agent_queue_empty"))
		return
	}
	if len(queue) > agentQueueLimit {
		queue = queue[:agentQueueLimit]
	}
	lines := make([]string, 0, len(queue))
	for _, t := range queue {
		lines = append(lines, b.trf(user, "ticket_status_line", map[string]string{
			"ticket_id": t.TicketID,
			"status":    t.Status,
			"subject":   t.Subject,
		}))
	}
	b.send(chatID, strings.Join(lines, "\n"))
}

func (b *Bot) toggleAgentOnline(ctx context.Context, user *domain.User, chatID int64, online bool) {
	err := b.tickets.SetAgentOnline(ctx, user.ID, online)
	if errors.Is(err, services.ErrNotAgent) {
		b.send(chatID, b.tr(user, "not_an_agent"))
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("toggle online")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	key := "agent_offline"
	if online {
		key = "agent_online"
	}
	b.sendKB(chatID, b.tr(user, key), b.agentKeyboard(user, online))
}
