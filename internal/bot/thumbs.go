package bot

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/grabthumb/thumbbot/internal/domain"
	"github.com/grabthumb/thumbbot/internal/services"
	"github.com/grabthumb/thumbbot/internal/youtube"
)

// qualityStart maps a quality choice onto the first acceptable entry of the
// best-first variant list; the flow falls further down the list when that
// variant does not exist for the video.
var qualityStart = map[string]int{
	"maxres": 0, // maxresdefault
	"hd":     2, // hqdefault
	"medium": 3, // mqdefault
}

// handleThumbnailRequest validates the link and runs the gate chain (force
// join, flood, quota) before offering the quality keyboard. Usage is not
// consumed yet; that happens only after at least one photo goes out.
func (b *Bot) handleThumbnailRequest(ctx context.Context, user *domain.User, m *tgbotapi.Message, snap services.Settings) {
	chatID := m.Chat.ID

	videoID := youtube.ExtractVideoID(m.Text)
	if videoID == "" {
		b.send(chatID, b.tr(user, "invalid_link"))
		return
	}

	if !b.joinedRequiredChannel(user, snap) {
		b.send(chatID, b.trf(user, "force_join", map[string]string{"channel": snap.ForceJoinChannel}))
		return
	}

	premium, err := b.accounts.IsPremium(ctx, user.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("premium lookup")
	}

	_, wait, err := b.quota.Check(ctx, user.ID, premium)
	switch {
	case errors.Is(err, services.ErrFlooding):
		b.send(chatID, b.trf(user, "flood_warning", map[string]string{
			"seconds": strconv.Itoa(wait),
		}))
		return
	case errors.Is(err, services.ErrQuotaExceeded):
		b.send(chatID, b.trf(user, "limit_reached", map[string]string{
			"limit":         strconv.Itoa(snap.FreeLimit),
			"premium_limit": strconv.Itoa(snap.PremiumLimit),
		}))
		return
	case err != nil:
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("quota check")
		b.send(chatID, b.tr(user, "error"))
		return
	}

	b.states.set(chatID, conversation{State: stateQuality, VideoID: videoID})
	b.sendKB(chatID, b.tr(user, "choose_quality"), b.qualityKeyboard(user))
}

// sendThumbnails probes and delivers the chosen variants. "all" sends every
// variant YouTube actually serves; a single-quality choice sends the best
// existing variant at or below the request. Usage is incremented once when
// at least one photo was delivered.
func (b *Bot) sendThumbnails(ctx context.Context, user *domain.User, chatID int64, videoID, quality string) {
	b.send(chatID, b.tr(user, "processing"))

	variants := youtube.Thumbnails(videoID)
	var chosen []youtube.Thumbnail
	if quality == "all" {
		for _, t := range variants {
			if b.probe(ctx, t.URL) {
				chosen = append(chosen, t)
			}
		}
	} else {
		start, ok := qualityStart[quality]
		if !ok {
			start = 0
		}
		for i := start; i < len(variants); i++ {
			if b.probe(ctx, variants[i].URL) {
				chosen = append(chosen, variants[i])
				break
			}
		}
	}

	sent := 0
	for _, t := range chosen {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(t.URL))
		photo.Caption = t.Quality
		if _, err := b.api.Send(photo); err != nil {
			b.log.Warn().Err(err).Str("video_id", videoID).Str("quality", t.Quality).Msg("photo send failed")
			continue
		}
		sent++
		thumbnailsSent.Inc()
	}

	if sent == 0 {
		b.send(chatID, b.tr(user, "no_thumbnails"))
		return
	}
	if err := b.quota.Consume(ctx, user.ID); err != nil {
		b.log.Error().Err(err).Int64("user_id", user.ID).Msg("consume quota")
	}
	b.send(chatID, b.trf(user, "thumbnails_sent", map[string]string{
		"count": strconv.Itoa(sent),
	}))
}
