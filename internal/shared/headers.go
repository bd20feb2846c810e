// Utilities for turning captured browser requests into proxy credentials.
//
// The proxy authenticates with raw browser headers. Users capture them
// either as a cURL command ("Copy as cURL" in DevTools) or as a pasted
// header block; both forms normalize to the newline-separated
// "Key: Value" format the proxy expects.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const maxRawHeaderSize = 50000

var (
	headerFlagRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	cookieFlagRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	controlRegex    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	scriptRegex     = regexp.MustCompile(`(?i)javascript:`)
)

// BrowserHeaders represents headers and cookies captured from a browser session.
type BrowserHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*BrowserHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
func ParseCurlCommand(data []byte) (*BrowserHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	matches := headerFlagRegex.FindAllStringSubmatch(curlCmd, -1)
	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(key, "cookie") {
			cookie = value
		} else {
			headers[key] = value
		}
	}

	if cookieMatch := cookieFlagRegex.FindStringSubmatch(curlCmd); len(cookieMatch) > 1 {
		if cookieMatch[1] != "" {
			cookie = cookieMatch[1]
		} else if cookieMatch[2] != "" {
			cookie = cookieMatch[2]
		}
	}

	// The proxy rejects header files without a cookie, so fail here
	// rather than writing credentials that can never authenticate.
	if cookie == "" {
		return nil, fmt.Errorf("%w: cookie header is required", ErrMissingCredentials)
	}

	return &BrowserHeaders{Headers: headers, Cookie: SanitizeCookie(cookie)}, nil
}

// ParseRawHeaders parses a pasted header block (one "Key: Value" per
// line). Request lines and status lines are skipped.
func ParseRawHeaders(raw string) (*BrowserHeaders, error) {
	if len(raw) > maxRawHeaderSize {
		return nil, fmt.Errorf("header block too large")
	}

	raw = controlRegex.ReplaceAllString(raw, "")

	headers := make(map[string]string)
	var cookie string

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.HasPrefix(line, "GET ") || strings.HasPrefix(line, "POST ") ||
			strings.HasPrefix(line, "PUT ") || strings.HasPrefix(line, "DELETE ") ||
			strings.HasPrefix(line, "PATCH ") {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "HTTP/") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(key, "cookie") {
			cookie = SanitizeCookie(value)
		} else {
			headers[key] = value
		}
	}

	if cookie == "" {
		return nil, fmt.Errorf("%w: cookie header is required", ErrMissingCredentials)
	}

	return &BrowserHeaders{Headers: headers, Cookie: cookie}, nil
}

// SanitizeCookie strips markup and script protocols from a cookie value.
func SanitizeCookie(cookie string) string {
	cookie = tagRegex.ReplaceAllString(cookie, "")
	return scriptRegex.ReplaceAllString(cookie, "")
}

// ToHeadersRaw converts parsed headers to the newline-separated
// "Key: Value" format the proxy consumes.
func (b *BrowserHeaders) ToHeadersRaw() string {
	var lines []string

	for key, value := range b.Headers {
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}

	if b.Cookie != "" {
		lines = append(lines, fmt.Sprintf("cookie: %s", b.Cookie))
	}

	return strings.Join(lines, "\n")
}
