// Package bot implements the Telegram conversational surface: the long-poll
// update loop, the per-chat state machine, and every user, agent, and admin
// flow. It talks to Telegram through go-telegram-bot-api and to the data
// layer through the service structs; all user-facing text comes from the
// i18n catalog.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/grabthumb/thumbbot/internal/config"
	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/i18n"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/services"
	"github.com/grabthumb/thumbbot/internal/youtube"
)

// api is the slice of the Telegram client the handlers need. Tests swap in a
// recorder; production uses *tgbotapi.BotAPI.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Bot owns the update loop and all conversation handlers.
type Bot struct {
	api    api
	poller *tgbotapi.BotAPI // nil in tests; only needed for GetUpdatesChan
	db     *gorm.DB
	cfg    config.Config
	log    zerolog.Logger

	settings *services.SettingsService
	accounts *services.AccountService
	quota    *services.QuotaService
	tickets  *services.TicketService
	prober   *youtube.Prober
	// probe reports whether a thumbnail URL exists; overridable in tests.
	probe func(ctx context.Context, url string) bool

	states *stateStore
}

// New authenticates against the Bot API and wires the service layer.
func New(cfg config.Config, db *gorm.DB, log zerolog.Logger) (*Bot, error) {
	client, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	b := newWithAPI(client, cfg, db, log)
	b.poller = client
	return b, nil
}

func newWithAPI(client api, cfg config.Config, db *gorm.DB, log zerolog.Logger) *Bot {
	b := &Bot{
		api:      client,
		db:       db,
		cfg:      cfg,
		log:      log,
		settings: &services.SettingsService{DB: db},
		quota:    &services.QuotaService{DB: db},
		tickets:  &services.TicketService{DB: db},
		prober:   youtube.NewProber(),
		states:   newStateStore(),
	}
	b.probe = b.prober.Exists
	b.quota.Settings = b.settings
	b.accounts = &services.AccountService{
		DB:          db,
		Settings:    b.settings,
		Notifier:    b,
		PremiumDays: cfg.Bot.PremiumDays,
	}
	return b
}

// Run consumes updates until ctx is cancelled. Each update is handled
// serially; Telegram's per-chat ordering is preserved that way.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.Bot.PollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.poller.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		b.poller.StopReceivingUpdates()
	}()

	b.log.Info().Str("username", b.poller.Self.UserName).Msg("bot polling started")
	return b.consume(ctx, updates)
}

// consume drains the channel until it closes. The channel only closes after
// StopReceivingUpdates, so running dry is a clean stop, not an error.
func (b *Bot) consume(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for upd := range updates {
		b.handleUpdate(ctx, upd)
	}
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Int("update_id", upd.UpdateID).Msg("update handler panicked")
		}
	}()

	switch {
	case upd.CallbackQuery != nil:
		updatesTotal.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		updatesTotal.WithLabelValues("message").Inc()
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil || m.From.IsBot {
		return
	}
	chatID := m.Chat.ID

	user, err := b.accounts.Register(ctx, m.From.ID, m.From.UserName, m.From.FirstName, m.From.LanguageCode)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", m.From.ID).Msg("register user")
		b.send(chatID, i18n.T(i18n.DefaultLanguage, "error", nil))
		return
	}

	admin := b.cfg.IsAdmin(user.ID)
	if user.IsBanned && !admin {
		b.send(chatID, b.tr(user, "user_banned"))
		return
	}

	snap, err := b.settings.Snapshot(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("load settings")
		b.send(chatID, b.tr(user, "error"))
		return
	}
	if snap.MaintenanceMode && !admin {
		b.send(chatID, b.tr(user, "maintenance"))
		return
	}

	if m.IsCommand() {
		b.handleCommand(ctx, user, m, snap)
		return
	}
	b.handleText(ctx, user, m, snap)
}

// joinedRequiredChannel enforces the force-join gate. A failed membership
// lookup is logged and waved through rather than locking users out.
func (b *Bot) joinedRequiredChannel(user *domain.User, snap services.Settings) bool {
	if !snap.ForceJoinEnabled || snap.ForceJoinChannel == "" || b.cfg.IsAdmin(user.ID) {
		return true
	}
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: snap.ForceJoinChannel,
			UserID:             user.ID,
		},
	})
	if err != nil {
		b.log.Warn().Err(err).Str("channel", snap.ForceJoinChannel).Int64("user_id", user.ID).Msg("membership check failed")
		return true
	}
	switch member.Status {
	case "creator", "administrator", "member":
		return true
	}
	return false
}

// tr translates a catalog key for the user's resolved language.
func (b *Bot) tr(user *domain.User, key string) string {
	return i18n.T(i18n.Resolve(user.LanguageCode), key, nil)
}

// trf is tr with placeholder substitution.
func (b *Bot) trf(user *domain.User, key string, args map[string]string) string {
	return i18n.T(i18n.Resolve(user.LanguageCode), key, args)
}

// send delivers a plain text message, logging failures instead of surfacing
// them; a lost message must never stall the update loop.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

// sendKB delivers a text message with a keyboard attached.
func (b *Bot) sendKB(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

// PremiumGranted implements services.Notifier: it congratulates the promoted
// user in their own language. Best effort.
func (b *Bot) PremiumGranted(chatID int64, until time.Time) {
	lang := i18n.DefaultLanguage
	if u, err := repo.GetUser(context.Background(), b.db, chatID); err == nil {
		lang = i18n.Resolve(u.LanguageCode)
	}
	b.send(chatID, i18n.T(lang, "premium_granted", nil))
}
