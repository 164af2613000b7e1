package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
)

// handleText routes non-command messages: button presses first, then the
// chat's pending state, and finally the default assumption that the text is
// a YouTube link.
func (b *Bot) handleText(ctx context.Context, user *domain.User, m *tgbotapi.Message, snap services.Settings) {
	chatID := m.Chat.ID
	conv := b.states.get(chatID)
	text := strings.TrimSpace(m.Text)

	if len(m.Photo) > 0 || m.Document != nil {
		switch conv.State {
		case stateTicketAttach:
			b.attachToTicket(ctx, user, m, conv)
		case statePaymentProof:
			b.recordPaymentProof(ctx, user, m)
		default:
			b.send(chatID, b.tr(user, "send_video_link"))
		}
		return
	}

	if key := b.pressedButton(user, text); key != "" {
		b.handleButton(ctx, user, chatID, key, conv, snap)
		return
	}

	switch conv.State {
	case stateFAQ:
		b.answerFAQ(ctx, user, chatID, text)

	case stateTicketSubject:
		if text == "" {
			b.send(chatID, b.tr(user, "ticket_ask_subject"))
			return
		}
		b.states.set(chatID, conversation{State: stateTicketMessage, Subject: text})
		b.send(chatID, b.tr(user, "ticket_ask_message"))

	case stateTicketMessage:
		if text == "" {
			b.send(chatID, b.tr(user, "ticket_ask_message"))
			return
		}
		b.openTicket(ctx, user, chatID, conv.Subject, text)

	case statePaymentProof:
		b.send(chatID, b.tr(user, "send_payment_screenshot"))

	case stateBroadcast:
		b.states.clear(chatID)
		if !b.cfg.IsAdmin(user.ID) {
			b.send(chatID, b.tr(user, "not_authorized"))
			return
		}
		b.runBroadcast(ctx, user, chatID, m.Text)

	default:
		b.handleThumbnailRequest(ctx, user, m, snap)
	}
}

func (b *Bot) handleButton(ctx context.Context, user *domain.User, chatID int64, key string, conv conversation, snap services.Settings) {
	switch key {
	case "btn_new_video":
		b.states.clear(chatID)
		b.send(chatID, b.tr(user, "send_video_link"))
	case "btn_stats":
		b.cmdStats(ctx, user, chatID)
	case "btn_referral":
		b.cmdReferral(ctx, user, chatID, snap)
	case "btn_premium":
		b.cmdPremium(ctx, user, chatID, snap)
	case "btn_buy_premium":
		b.startPaymentFlow(user, chatID)
	case "btn_help":
		b.send(chatID, b.tr(user, "help"))
	case "btn_support":
		b.states.clear(chatID)
		b.sendKB(chatID, b.tr(user, "support_menu"), b.supportKeyboard(user))
	case "btn_faq":
		b.states.set(chatID, conversation{State: stateFAQ})
		b.send(chatID, b.tr(user, "faq_prompt"))
	case "btn_new_ticket":
		b.states.set(chatID, conversation{State: stateTicketSubject})
		b.send(chatID, b.tr(user, "ticket_ask_subject"))
	case "btn_my_tickets":
		b.listUserTickets(ctx, user, chatID)
	case "btn_done":
		b.states.clear(chatID)
		b.sendMainMenu(ctx, user, chatID, "main_menu")
	case "btn_main_menu", "btn_back":
		b.states.clear(chatID)
		b.sendMainMenu(ctx, user, chatID, "main_menu")
	case "btn_my_queue":
		b.showAgentPanel(ctx, user, chatID)
	case "btn_go_online", "btn_go_offline":
		b.toggleAgentOnline(ctx, user, chatID, key == "btn_go_online")
	case "btn_admin_panel":
		b.showAdminPanel(user, chatID)
	case "btn_bot_stats":
		b.showBotStats(ctx, user, chatID)
	case "btn_broadcast":
		b.startBroadcast(user, chatID)
	}
}

// handleCallback answers inline keyboard presses: language switch, premium
// purchase start, and thumbnail quality selection.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn().Err(err).Msg("callback ack failed")
	}
	if cq.From == nil || cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	user, err := b.accounts.Register(ctx, cq.From.ID, cq.From.UserName, cq.From.FirstName, cq.From.LanguageCode)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", cq.From.ID).Msg("register user")
		return
	}
	if user.IsBanned && !b.cfg.IsAdmin(user.ID) {
		b.send(chatID, b.tr(user, "user_banned"))
		return
	}

	switch {
	case strings.HasPrefix(cq.Data, "lang:"):
		b.switchLanguage(ctx, user, chatID, strings.TrimPrefix(cq.Data, "lang:"))
	case cq.Data == "buy":
		b.startPaymentFlow(user, chatID)
	case strings.HasPrefix(cq.Data, "qual:"):
		conv := b.states.get(chatID)
		if conv.State != stateQuality || conv.VideoID == "" {
			b.send(chatID, b.tr(user, "send_video_link"))
			return
		}
		b.states.clear(chatID)
		b.sendThumbnails(ctx, user, chatID, conv.VideoID, strings.TrimPrefix(cq.Data, "qual:"))
	}
}

func (b *Bot) switchLanguage(ctx context.Context, user *domain.User, chatID int64, code string) {
	names := i18n.Languages()
	name, ok := names[code]
	if !ok {
		return
	}
	if err := repo.SetLanguage(ctx, b.db, user.ID, code); err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("set language")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	user.LanguageCode = code
	b.send(chatID, b.trf(user, "language_changed", map[string]string{"language": name}))
	b.sendMainMenu(ctx, user, chatID, "main_menu")
}

func (b *Bot) startPaymentFlow(user *domain.User, chatID int64) {
	b.send(chatID, b.trf(user, "payment_instructions", map[string]string{
		"account": b.cfg.Bot.PaymentAccount,
	}))
	b.states.set(chatID, conversation{State: statePaymentProof})
	b.send(chatID, b.tr(user, "send_payment_screenshot"))
}

// recordPaymentProof stores the screenshot's Telegram file reference and
// pings every configured admin for review.
func (b *Bot) recordPaymentProof(ctx context.Context, user *domain.User, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	fileID, fileUniqueID := mediaRef(m)
	if fileID == "" {
		b.send(chatID, b.tr(user, "send_payment_screenshot"))
		return
	}

	if err := repo.AddPaymentProof(ctx, b.db, user.ID, fileID, fileUniqueID); err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("store payment proof")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	b.states.clear(chatID)
	b.send(chatID, b.tr(user, "payment_proof_received"))

	for _, adminID := range b.cfg.Bot.AdminIDs {
		b.send(adminID, "💳 Payment proof from user "+strconv.FormatInt(user.ID, 10)+". Review with /approve or /reject "+strconv.FormatInt(user.ID, 10)+".")
	}
}

// mediaRef pulls the opaque Telegram file identifiers out of a photo or
// document message. Photos come sorted smallest first; the last is the
// original resolution.
func mediaRef(m *tgbotapi.Message) (fileID, fileUniqueID string) {
	if len(m.Photo) > 0 {
		best := m.Photo[len(m.Photo)-1]
		return best.FileID, best.FileUniqueID
	}
	if m.Document != nil {
		return m.Document.FileID, m.Document.FileUniqueID
	}
	return "", ""
}
