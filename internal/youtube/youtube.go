// Package youtube extracts video IDs from the many URL shapes YouTube links
// come in and derives the static thumbnail URLs YouTube serves for a video.
// It never talks to the YouTube API; thumbnails are predictable files under
// img.youtube.com and only an optional HEAD probe touches the network.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// idPatterns are tried in order; the first submatch is the video ID.
// The bare-ID pattern is last so a full URL never half-matches.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/live/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls an 11-character video ID out of a URL or bare ID.
// The empty string means no pattern matched.
func ExtractVideoID(text string) string {
	text = strings.TrimSpace(text)
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ValidateVideoID reports whether s has the exact shape of a video ID.
func ValidateVideoID(s string) bool {
	return validID.MatchString(s)
}

// Thumbnail is one downloadable image variant for a video.
type Thumbnail struct {
	Quality  string
	URL      string
	Filename string
}

// thumbnailVariants maps the known img.youtube.com files to display labels.
// Ordered best quality first; not every video has every variant.
var thumbnailVariants = []struct {
	file   string
	label  string
	suffix string
}{
	{"maxresdefault", "Maximum Resolution (1920x1080)", "maxres"},
	{"sddefault", "Standard Definition (640x480)", "sd"},
	{"hqdefault", "High Quality (480x360)", "hq"},
	{"mqdefault", "Medium Quality (320x180)", "mq"},
	{"default", "Default (120x90)", "default"},
	{"1", "Thumbnail 1", "1"},
	{"2", "Thumbnail 2", "2"},
	{"3", "Thumbnail 3", "3"},
}

// Thumbnails returns every candidate thumbnail for a video, best first.
func Thumbnails(videoID string) []Thumbnail {
	out := make([]Thumbnail, 0, len(thumbnailVariants))
	for _, v := range thumbnailVariants {
		out = append(out, Thumbnail{
			Quality:  v.label,
			URL:      fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, v.file),
			Filename: fmt.Sprintf("%s_%s.jpg", videoID, v.suffix),
		})
	}
	return out
}

// Prober checks which candidate thumbnails actually exist. YouTube serves
// 404 for variants a video was never rendered at (maxres in particular).
type Prober struct {
	Client *http.Client
}

// NewProber returns a Prober with a short-timeout client.
func NewProber() *Prober {
	return &Prober{Client: &http.Client{Timeout: 5 * time.Second}}
}

// Exists issues a HEAD request for the thumbnail URL and reports whether
// YouTube has the file. Network errors read as "does not exist"; the caller
// is choosing images to send, not diagnosing connectivity.
func (p *Prober) Exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
