package i18n

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"es", "es"},
		{"es-MX", "es"},
		{"es_AR", "es"},
		{"en-GB", "en"},
		{"de", "en"}, // unsupported falls back
		{"", "en"},
		{"not-a-tag!!", "en"},
	}
	for _, c := range cases {
		if got := Resolve(c.in); got != c.want {
			t.Errorf("Resolve(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestT_Interpolation(t *testing.T) {
	got := T("en", "flood_warning", map[string]string{"seconds": "42"})
	if !strings.Contains(got, "42 seconds") {
		t.Errorf("placeholder not substituted: %q", got)
	}
}

func TestT_FallbackChain(t *testing.T) {
	// Unknown language falls back to English.
	if got := T("de", "processing", nil); !strings.Contains(got, "Processing") {
		t.Errorf("language fallback failed: %q", got)
	}
	// Key missing from a supported language falls back to the English text.
	if got := T("es", "agent_menu", nil); !strings.Contains(got, "Agent Panel") {
		t.Errorf("key fallback failed: %q", got)
	}
	// Entirely unknown key renders as itself.
	if got := T("en", "no_such_key", nil); got != "no_such_key" {
		t.Errorf("unknown key = %q", got)
	}
}

func TestT_SpanishCatalog(t *testing.T) {
	got := T("es", "invalid_link", nil)
	if !strings.Contains(got, "inválido") {
		t.Errorf("expected Spanish text, got %q", got)
	}
}

func TestLanguages_CopyIsIndependent(t *testing.T) {
	m := Languages()
	if len(m) != 2 || m["en"] == "" || m["es"] == "" {
		t.Fatalf("unexpected languages: %v", m)
	}
	m["en"] = "mutated"
	if Languages()["en"] == "mutated" {
		t.Errorf("Languages returned shared map")
	}
}
