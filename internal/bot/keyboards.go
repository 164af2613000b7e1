package bot

import (
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
)

// mainKeyboard is the role-aware reply keyboard for the main menu. Agents
// get an extra support-panel row; row layout mirrors the button grammar the
// catalog defines.
func (b *Bot) mainKeyboard(user *domain.User, isAgent bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_new_video")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_stats")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_referral")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_premium")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_support")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_help")),
		),
	}
	if isAgent {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_my_queue")),
		))
	}
	if b.cfg.IsAdmin(user.ID) {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_admin_panel")),
		))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// adminKeyboard is the in-chat admin panel; the dashboard covers the rest.
func (b *Bot) adminKeyboard(user *domain.User) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_bot_stats")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_broadcast")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_main_menu")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *Bot) supportKeyboard(user *domain.User) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_faq")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_new_ticket")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_my_tickets")),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_main_menu")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *Bot) agentKeyboard(user *domain.User, online bool) tgbotapi.ReplyKeyboardMarkup {
	toggle := "btn_go_online"
	if online {
		toggle = "btn_go_offline"
	}
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, toggle)),
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_my_queue")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_main_menu")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func (b *Bot) doneKeyboard(user *domain.User) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.tr(user, "btn_done")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// qualityKeyboard offers the thumbnail size choices as inline buttons; the
// pending video ID lives in the chat state, not the callback payload.
func (b *Bot) qualityKeyboard(user *domain.User) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("MaxRes", "qual:maxres"),
			tgbotapi.NewInlineKeyboardButtonData("HD", "qual:hd"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Medium", "qual:medium"),
			tgbotapi.NewInlineKeyboardButtonData(b.tr(user, "btn_all"), "qual:all"),
		),
	)
}

// languageKeyboard lists every catalog language as an inline button.
func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	names := i18n.Languages()
	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	row := make([]tgbotapi.InlineKeyboardButton, 0, len(codes))
	for _, code := range codes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(names[code], "lang:"+code))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

// pressedButton maps the incoming text back to a btn_* catalog key, checking
// the user's language first and English as fallback. Returns "" when the
// text is not a known button.
func (b *Bot) pressedButton(user *domain.User, text string) string {
	keys := []string{
		"btn_new_video", "btn_stats", "btn_referral", "btn_premium",
		"btn_buy_premium", "btn_support", "btn_help", "btn_main_menu",
		"btn_faq", "btn_new_ticket", "btn_my_tickets", "btn_back", "btn_done",
		"btn_my_queue", "btn_go_online", "btn_go_offline",
		"btn_admin_panel", "btn_bot_stats", "btn_broadcast",
	}
	lang := i18n.Resolve(user.LanguageCode)
	for _, k := range keys {
		if text == i18n.T(lang, k, nil) || text == i18n.T(i18n.DefaultLanguage, k, nil) {
			return k
		}
	}
	return ""
}
