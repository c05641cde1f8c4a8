// Package security validates the values that end up on outbound requests:
// the Todo API base URL and the static credential header.
package security

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// ValidateBaseURL checks that urlStr is an absolute http(s) URL with a host
// and no query or fragment, so request paths can be appended to it.
func ValidateBaseURL(urlStr string) error {
	if urlStr == "" {
		return errors.Configuration("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.ConfigurationWithCause("invalid base URL format", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.Configuration("base URL scheme must be http or https")
	}

	if parsedURL.Host == "" {
		return errors.Configuration("base URL must have a host")
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return errors.Configuration("base URL must not contain a query or fragment")
	}

	return nil
}

// NormalizeBaseURL validates urlStr and strips trailing slashes.
func NormalizeBaseURL(urlStr string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(urlStr), "/")
	if err := ValidateBaseURL(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// ValidateCredential checks that the API key is usable as a header value.
func ValidateCredential(key string) error {
	if key == "" {
		return errors.Configuration("API_KEY environment variable is required")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return errors.Configuration("API key must not contain control characters")
		}
	}

	return nil
}

// Redact masks a secret for log output, keeping at most the last four characters.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
