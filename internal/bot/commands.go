package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
)

func (b *Bot) handleCommand(ctx context.Context, user *domain.User, m *tgbotapi.Message, snap services.Settings) {
	chatID := m.Chat.ID

	switch m.Command() {
	case "start":
		b.cmdStart(ctx, user, m, snap)
	case "help":
		b.send(chatID, b.tr(user, "help"))
	case "stats":
		b.cmdStats(ctx, user, chatID)
	case "referral":
		b.cmdReferral(ctx, user, chatID, snap)
	case "premium":
		b.cmdPremium(ctx, user, chatID, snap)
	case "language":
		b.sendKB(chatID, b.tr(user, "choose_language"), languageKeyboard())
	case "cancel":
		b.states.clear(chatID)
		b.sendMainMenu(ctx, user, chatID, "cancelled")

	case "broadcast", "ban", "unban", "addagent", "approve", "reject":
		if !b.cfg.IsAdmin(user.ID) {
			b.send(chatID, b.tr(user, "not_authorized"))
			return
		}
		b.handleAdminCommand(ctx, user, m)

	case "reply":
		b.cmdAgentReply(ctx, user, m)
	case "resolve":
		b.cmdAgentResolve(ctx, user, m)

	default:
		b.send(chatID, b.tr(user, "send_video_link"))
	}
}

// sendMainMenu shows the given catalog text with the role-aware main
// keyboard attached.
func (b *Bot) sendMainMenu(ctx context.Context, user *domain.User, chatID int64, key string) {
	isAgent, err := repo.IsAgent(ctx, b.db, user.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("agent lookup")
		isAgent = false
	}
	b.sendKB(chatID, b.tr(user, key), b.mainKeyboard(user, isAgent))
}

// parseReferralPayload reads the deep-link argument of /start. Accepted
// shapes are "ref_<id>" and a bare numeric ID; anything else yields zero.
func parseReferralPayload(payload string) int64 {
	payload = strings.TrimSpace(payload)
	payload = strings.TrimPrefix(payload, "ref_")
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (b *Bot) cmdStart(ctx context.Context, user *domain.User, m *tgbotapi.Message, snap services.Settings) {
	chatID := m.Chat.ID

	if !b.joinedRequiredChannel(user, snap) {
		b.send(chatID, b.trf(user, "force_join", map[string]string{"channel": snap.ForceJoinChannel}))
		return
	}

	welcomeKey := "welcome"
	if refID := parseReferralPayload(m.CommandArguments()); refID != 0 && refID != user.ID {
		if err := b.accounts.RecordReferral(ctx, refID, user.ID); err != nil {
			b.log.Error().Err(err).Int64("referrer_id", refID).Int64("user_id", user.ID).Msg("record referral")
		} else if fresh, err := b.accounts.Get(ctx, user.ID); err == nil &&
			fresh.ReferredBy != nil && *fresh.ReferredBy == refID {
			b.sendKB(chatID, b.trf(user, "welcome_referred", map[string]string{
				"referrer_id": strconv.FormatInt(refID, 10),
				"bonus":       strconv.Itoa(snap.ReferralBonus),
			}), nil)
			welcomeKey = ""
		}
	}

	b.states.clear(chatID)
	if welcomeKey != "" {
		b.sendMainMenu(ctx, user, chatID, welcomeKey)
	} else {
		b.sendMainMenu(ctx, user, chatID, "main_menu")
	}
}

func (b *Bot) cmdStats(ctx context.Context, user *domain.User, chatID int64) {
	premium, err := b.accounts.IsPremium(ctx, user.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("premium lookup")
	}
	status, err := b.quota.Status(ctx, user.ID, premium)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("quota status")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	premiumLabel := "❌"
	if premium {
		premiumLabel = "💎"
	}
	b.send(chatID, b.trf(user, "stats", map[string]string{
		"used":      strconv.Itoa(status.Used),
		"limit":     strconv.Itoa(status.Limit),
		"referrals": strconv.Itoa(user.ReferralCount),
		"premium":   premiumLabel,
		"joined":    user.CreatedAt.Format("2006-01-02"),
	}))
}

func (b *Bot) cmdReferral(ctx context.Context, user *domain.User, chatID int64, snap services.Settings) {
	link := fmt.Sprintf("https://t.me/%s?start=ref_%d", b.cfg.Bot.Username, user.ID)
	b.send(chatID, b.trf(user, "referral_info", map[string]string{
		"required": strconv.Itoa(snap.ReferralsNeeded),
		"link":     link,
		"count":    strconv.Itoa(user.ReferralCount),
	}))
}

func (b *Bot) cmdPremium(ctx context.Context, user *domain.User, chatID int64, snap services.Settings) {
	text := b.trf(user, "premium_info", map[string]string{
		"premium_limit": strconv.Itoa(snap.PremiumLimit),
		"required":      strconv.Itoa(snap.ReferralsNeeded),
		"count":         strconv.Itoa(user.ReferralCount),
	})
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.tr(user, "btn_buy_premium"), "buy"),
		),
	)
	b.sendKB(chatID, text, kb)
}

func (b *Bot) cmdAgentReply(ctx context.Context, user *domain.User, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	parts := strings.SplitN(strings.TrimSpace(m.CommandArguments()), " ", 2)
	if len(parts) < 2 || parts[0] == "" {
		b.send(chatID, "Usage: /reply TICKETID message")
		return
	}
	ticketID, body := strings.ToUpper(parts[0]), parts[1]

	err := b.tickets.AddAgentReply(ctx, ticketID, user.ID, body)
	switch {
	case errors.Is(err, services.ErrNotAgent):
		b.send(chatID, b.tr(user, "not_an_agent"))
		return
	case errors.Is(err, services.ErrTicketNotFound):
		b.send(chatID, b.tr(user, "ticket_not_found"))
		return
	case err != nil:
		b.log.Error().Err(err).Str("ticket_id", ticketID).Msg("agent reply")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	b.send(chatID, b.trf(user, "agent_reply_sent", map[string]string{"ticket_id": ticketID}))

	// Relay the reply to the requester in their own language.
	if t, err := b.tickets.Get(ctx, ticketID); err == nil {
		lang := i18n.DefaultLanguage
		if owner, err := repo.GetUser(ctx, b.db, t.UserID); err == nil {
			lang = i18n.Resolve(owner.LanguageCode)
		}
		b.send(t.UserID, i18n.T(lang, "ticket_reply", map[string]string{
			"ticket_id": ticketID,
			"body":      body,
		}))
	}
}

func (b *Bot) cmdAgentResolve(ctx context.Context, user *domain.User, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	ticketID := strings.ToUpper(strings.TrimSpace(m.CommandArguments()))
	if ticketID == "" {
		b.send(chatID, "Usage: /resolve TICKETID")
		return
	}

	isAgent, err := repo.IsAgent(ctx, b.db, user.ID)
	if err != nil || !isAgent {
		b.send(chatID, b.tr(user, "not_an_agent"))
		return
	}

	t, err := b.tickets.Get(ctx, ticketID)
	if errors.Is(err, services.ErrTicketNotFound) {
		b.send(chatID, b.tr(user, "ticket_not_found"))
		return
	}
	if err == nil {
		err = b.tickets.SetStatus(ctx, ticketID, domain.TicketStatusResolved)
	}
	if err != nil {
		b.log.Error().Err(err).Str("ticket_id", ticketID).Msg("resolve ticket")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	b.send(chatID, b.trf(user, "ticket_status_line", map[string]string{
		"ticket_id": ticketID,
		"status":    domain.TicketStatusResolved,
		"subject":   t.Subject,
	}))
}

// grantPurchasedPremium finishes an approved payment: the proof row flips to
// approved and the buyer gets a timed premium grant plus a notification.
func (b *Bot) grantPurchasedPremium(ctx context.Context, buyerID int64) error {
	if err := repo.UpdateLatestPaymentStatus(ctx, b.db, buyerID, domain.PaymentStatusApproved); err != nil {
		return err
	}
	days := b.cfg.Bot.PremiumDays
	until := time.Now().AddDate(0, 0, days)
	if err := b.accounts.GrantPremium(ctx, buyerID, until); err != nil {
		return err
	}

	lang := i18n.DefaultLanguage
	if u, err := repo.GetUser(ctx, b.db, buyerID); err == nil {
		lang = i18n.Resolve(u.LanguageCode)
	}
	b.send(buyerID, i18n.T(lang, "payment_approved", map[string]string{
		"days": strconv.Itoa(days),
	}))
	return nil
}
