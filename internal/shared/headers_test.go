package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	curl := `curl 'https://music.youtube.com/youtubei/v1/browse' \
  -H 'accept: */*' \
  -H 'accept-language: en-US,en;q=0.9' \
  -H 'cookie: VISITOR_INFO1_LIVE=abc123; SID=secret' \
  -H 'user-agent: Mozilla/5.0'`

	parsed, err := ParseCurlCommand([]byte(curl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Cookie != "VISITOR_INFO1_LIVE=abc123; SID=secret" {
		t.Errorf("cookie: got %q", parsed.Cookie)
	}
	if parsed.Headers["accept"] != "*/*" {
		t.Errorf("accept header: got %q", parsed.Headers["accept"])
	}
	if parsed.Headers["user-agent"] != "Mozilla/5.0" {
		t.Errorf("user-agent: got %q", parsed.Headers["user-agent"])
	}
	if _, ok := parsed.Headers["cookie"]; ok {
		t.Error("cookie duplicated into the header map")
	}
}

func TestParseCurlCommandDoubleQuotes(t *testing.T) {
	curl := `curl "https://music.youtube.com" -H "accept: */*" -b "SID=secret"`

	parsed, err := ParseCurlCommand([]byte(curl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Cookie != "SID=secret" {
		t.Errorf("cookie from -b flag: got %q", parsed.Cookie)
	}
}

func TestParseCurlCommandCookieFlagWins(t *testing.T) {
	curl := `curl 'https://x' -H 'cookie: FROM_HEADER=1' -b 'FROM_FLAG=1'`

	parsed, err := ParseCurlCommand([]byte(curl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Cookie != "FROM_FLAG=1" {
		t.Errorf("got %q, want the -b flag value", parsed.Cookie)
	}
}

func TestParseCurlCommandMissingCookie(t *testing.T) {
	curl := `curl 'https://music.youtube.com' -H 'accept: */*' -H 'user-agent: Mozilla/5.0'`

	_, err := ParseCurlCommand([]byte(curl))
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("got %v, want ErrMissingCredentials", err)
	}
}

func TestParseCurlCommandNoHeaders(t *testing.T) {
	if _, err := ParseCurlCommand([]byte("curl https://example.com")); err == nil {
		t.Error("expected error for curl command without headers")
	}
}

func TestParseCurlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.sh")
	content := `curl 'https://music.youtube.com' -H 'cookie: SID=abc'`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseCurlFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Cookie != "SID=abc" {
		t.Errorf("got %q", parsed.Cookie)
	}

	if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseRawHeaders(t *testing.T) {
	raw := `POST /youtubei/v1/browse HTTP/1.1
accept: */*
cookie: VISITOR_INFO1_LIVE=abc; SID=secret
x-goog-authuser: 0`

	parsed, err := ParseRawHeaders(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Cookie != "VISITOR_INFO1_LIVE=abc; SID=secret" {
		t.Errorf("cookie: got %q", parsed.Cookie)
	}
	if parsed.Headers["x-goog-authuser"] != "0" {
		t.Errorf("got %q", parsed.Headers["x-goog-authuser"])
	}
	if _, ok := parsed.Headers["POST /youtubei/v1/browse HTTP/1.1"]; ok {
		t.Error("request line not skipped")
	}
}

func TestParseRawHeadersMissingCookie(t *testing.T) {
	_, err := ParseRawHeaders("accept: */*\nx-goog-authuser: 0")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("got %v, want ErrMissingCredentials", err)
	}
}

func TestParseRawHeadersTooLarge(t *testing.T) {
	raw := "cookie: " + strings.Repeat("x", maxRawHeaderSize)
	if _, err := ParseRawHeaders(raw); err == nil {
		t.Error("expected error for oversized header block")
	}
}

func TestSanitizeCookie(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SID=abc<script>alert(1)</script>", "SID=abcalert(1)"},
		{"javascript:evil()", "evil()"},
		{"SID=clean", "SID=clean"},
	}

	for _, tt := range tests {
		if got := SanitizeCookie(tt.in); got != tt.want {
			t.Errorf("SanitizeCookie(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToHeadersRaw(t *testing.T) {
	b := &BrowserHeaders{
		Headers: map[string]string{"accept": "*/*"},
		Cookie:  "SID=abc",
	}

	raw := b.ToHeadersRaw()
	if !strings.Contains(raw, "accept: */*") {
		t.Errorf("missing header line: %q", raw)
	}
	if !strings.Contains(raw, "cookie: SID=abc") {
		t.Errorf("missing cookie line: %q", raw)
	}
}
