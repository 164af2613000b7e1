// Package i18n provides the bot's message catalog. Lookup is by key and
// language; placeholders use {name} syntax and are substituted from a map.
// Telegram hands us BCP 47-ish language codes ("en", "es-MX", "pt_BR"), which
// are resolved against the supported set with golang.org/x/text/language so
// regional variants land on their base language instead of the default.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a user's language cannot be resolved.
const DefaultLanguage = "en"

var supported = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var langNames = map[string]string{
	"en": "English",
	"es": "Español",
}

// Resolve maps a Telegram language code onto a supported catalog language.
func Resolve(code string) string {
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return DefaultLanguage
	}
	_, idx, _ := matcher.Match(tag)
	base, _ := supported[idx].Base()
	return base.String()
}

// Languages returns the supported language codes with display names.
func Languages() map[string]string {
	out := make(map[string]string, len(langNames))
	for k, v := range langNames {
		out[k] = v
	}
	return out
}

// T renders the catalog entry for (key, lang), substituting {placeholder}
// occurrences from args. Unknown languages fall back to English; unknown keys
// render as the key itself so a missing entry is visible, not silent.
func T(lang, key string, args map[string]string) string {
	cat, ok := catalog[lang]
	if !ok {
		cat = catalog[DefaultLanguage]
	}
	msg, ok := cat[key]
	if !ok {
		msg, ok = catalog[DefaultLanguage][key]
		if !ok {
			return key
		}
	}
	for name, val := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", val)
	}
	return msg
}
