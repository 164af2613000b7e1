package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
)

// handleAdminCommand dispatches the admin-only slash commands. The caller
// has already verified the sender against the configured admin list.
func (b *Bot) handleAdminCommand(ctx context.Context, admin *domain.User, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	args := strings.Fields(m.CommandArguments())

	targetID := int64(0)
	if len(args) > 0 {
		targetID, _ = strconv.ParseInt(args[0], 10, 64)
	}

	switch m.Command() {
	case "broadcast":
		b.startBroadcast(admin, chatID)

	case "ban", "unban":
		if targetID == 0 {
			b.send(chatID, "Usage: /"+m.Command()+" USER_ID")
			return
		}
		banned := m.Command() == "ban"
		if err := b.accounts.SetBanned(ctx, targetID, banned); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				b.send(chatID, b.tr(admin, "error"))
				return
			}
			b.log.Error().Err(err).Int64("target_id", targetID).Msg("set banned")
			b.send(chatID, b.tr(admin, "error"))
			return
		}
		key := "user_unbanned_admin"
		if banned {
			key = "user_banned_admin"
			b.notifyUser(ctx, targetID, "user_banned", nil)
		}
		b.send(chatID, b.trf(admin, key, map[string]string{
			"user_id": strconv.FormatInt(targetID, 10),
		}))

	case "addagent":
		if targetID == 0 {
			b.send(chatID, "Usage: /addagent USER_ID [role]")
			return
		}
		role := ""
		if len(args) > 1 {
			role = args[1]
		}
		if err := b.tickets.AddAgent(ctx, targetID, role); err != nil {
			b.log.Error().Err(err).Int64("target_id", targetID).Msg("add agent")
			b.send(chatID, b.tr(admin, "error"))
			return
		}
		b.send(chatID, b.trf(admin, "agent_added", map[string]string{
			"user_id": strconv.FormatInt(targetID, 10),
		}))

	case "approve":
		if targetID == 0 {
			b.send(chatID, "Usage: /approve USER_ID")
			return
		}
		if err := b.grantPurchasedPremium(ctx, targetID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				b.send(chatID, "No pending payment for that user.")
				return
			}
			b.log.Error().Err(err).Int64("target_id", targetID).Msg("approve payment")
			b.send(chatID, b.tr(admin, "error"))
			return
		}
		b.send(chatID, "✅ Approved.")

	case "reject":
		if targetID == 0 {
			b.send(chatID, "Usage: /reject USER_ID")
			return
		}
		err := repo.UpdateLatestPaymentStatus(ctx, b.db, targetID, domain.PaymentStatusRejected)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				b.send(chatID, "No pending payment for that user.")
				return
			}
			b.log.Error().Err(err).Int64("target_id", targetID).Msg("reject payment")
			b.send(chatID, b.tr(admin, "error"))
			return
		}
		b.notifyUser(ctx, targetID, "payment_rejected", nil)
		b.send(chatID, "❌ Rejected.")
	}
}

// showAdminPanel opens the in-chat admin menu. Reply-keyboard text can be
// typed by anyone, so every admin button re-checks the sender.
func (b *Bot) showAdminPanel(user *domain.User, chatID int64) {
	if !b.cfg.IsAdmin(user.ID) {
		b.send(chatID, b.tr(user, "not_authorized"))
		return
	}
	b.sendKB(chatID, b.tr(user, "admin_menu"), b.adminKeyboard(user))
}

// showBotStats renders the dashboard overview totals in chat.
func (b *Bot) showBotStats(ctx context.Context, user *domain.User, chatID int64) {
	if !b.cfg.IsAdmin(user.ID) {
		b.send(chatID, b.tr(user, "not_authorized"))
		return
	}
	o, err := repo.OverviewStats(ctx, b.db, time.Now())
	if err != nil {
		b.log.Error().Err(err).Msg("overview stats")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	b.send(chatID, b.trf(user, "bot_stats", map[string]string{
		"users":    strconv.FormatInt(o.TotalUsers, 10),
		"premium":  strconv.FormatInt(o.PremiumUsers, 10),
		"banned":   strconv.FormatInt(o.BannedUsers, 10),
		"today":    strconv.FormatInt(o.TodayRequests, 10),
		"tickets":  strconv.FormatInt(o.OpenTickets, 10),
		"payments": strconv.FormatInt(o.PendingPayments, 10),
		"online":   strconv.FormatInt(o.OnlineAgents, 10),
		"agents":   strconv.FormatInt(o.TotalAgents, 10),
	}))
}

// startBroadcast arms the broadcast state; the next plain message is copied
// to every non-banned user.
func (b *Bot) startBroadcast(user *domain.User, chatID int64) {
	if !b.cfg.IsAdmin(user.ID) {
		b.send(chatID, b.tr(user, "not_authorized"))
		return
	}
	b.states.set(chatID, conversation{State: stateBroadcast})
	b.send(chatID, b.tr(user, "broadcast_prompt"))
}

// runBroadcast copies the admin's message to every non-banned user. A
// failure on one recipient never stops the run; the tally reports both
// outcomes.
func (b *Bot) runBroadcast(ctx context.Context, admin *domain.User, chatID int64, text string) {
	targets, err := repo.ListBroadcastTargets(ctx, b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("list broadcast targets")
		b.send(chatID, b.tr(admin, "error"))
		return
	}

	sent, failed := 0, 0
	for _, target := range targets {
		if _, err := b.api.Send(tgbotapi.NewMessage(target.ID, text)); err != nil {
			failed++
			broadcastTotal.WithLabelValues("failed").Inc()
			b.log.Warn().Err(err).Int64("user_id", target.ID).Msg("broadcast send failed")
			continue
		}
		sent++
		broadcastTotal.WithLabelValues("sent").Inc()
	}

	b.send(chatID, b.trf(admin, "broadcast_done", map[string]string{
		"sent":   strconv.Itoa(sent),
		"failed": strconv.Itoa(failed),
	}))
}

// notifyUser delivers a catalog message to another user in their language.
// Best effort; the target may have blocked the bot.
func (b *Bot) notifyUser(ctx context.Context, userID int64, key string, args map[string]string) {
	lang := i18n.DefaultLanguage
	if u, err := repo.GetUser(ctx, b.db, userID); err == nil {
		lang = i18n.Resolve(u.LanguageCode)
	}
	b.send(userID, i18n.T(lang, key, args))
}
