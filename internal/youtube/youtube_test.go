package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractVideoID_KnownShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/some/path?a=1&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"}, // v= anywhere
		{"not a link at all", ""},
		{"https://vimeo.com/123456789", ""},
		{"tooShortID", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractVideoID(c.in); got != c.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateVideoID(t *testing.T) {
	if !ValidateVideoID("dQw4w9WgXcQ") {
		t.Errorf("valid ID rejected")
	}
	for _, bad := range []string{"", "short", "waaaaaaaaaytoolong", "has space s", "bad/chars!!"} {
		if ValidateVideoID(bad) {
			t.Errorf("ValidateVideoID(%q) = true, want false", bad)
		}
	}
}

func TestThumbnails_BestFirstWithStableNames(t *testing.T) {
	got := Thumbnails("dQw4w9WgXcQ")
	if len(got) != 8 {
		t.Fatalf("got %d variants, want 8", len(got))
	}
	if got[0].URL != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("first variant URL = %q", got[0].URL)
	}
	if got[0].Filename != "dQw4w9WgXcQ_maxres.jpg" {
		t.Errorf("first variant filename = %q", got[0].Filename)
	}
	if got[4].URL != "https://img.youtube.com/vi/dQw4w9WgXcQ/default.jpg" {
		t.Errorf("default variant URL = %q", got[4].URL)
	}
	for _, th := range got {
		if !strings.HasPrefix(th.URL, "https://img.youtube.com/vi/dQw4w9WgXcQ/") {
			t.Errorf("URL outside the vi/ tree: %q", th.URL)
		}
		if th.Quality == "" {
			t.Errorf("empty quality label for %q", th.URL)
		}
	}
}

func TestProberExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe used %s, want HEAD", r.Method)
		}
		if strings.Contains(r.URL.Path, "maxresdefault") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber()
	ctx := context.Background()
	if !p.Exists(ctx, srv.URL+"/vi/abc/hqdefault.jpg") {
		t.Errorf("existing thumbnail reported missing")
	}
	if p.Exists(ctx, srv.URL+"/vi/abc/maxresdefault.jpg") {
		t.Errorf("404 thumbnail reported present")
	}
	if p.Exists(ctx, "http://127.0.0.1:0/nope.jpg") {
		t.Errorf("network error should read as missing")
	}
}
