package llm

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// ClassifyStatus turns a failed HTTP exchange into a domain failure.
// Authentication failures and replies that complain about the API key are
// configuration errors; everything else may succeed on retry.
func ClassifyStatus(provider string, status int, message string) error {
	cause := fmt.Errorf("%s: API returned status %d: %s", provider, status, message)
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden, MentionsAPIKey(message):
		return domain.NewConfigurationError(cause)
	case status == http.StatusTooManyRequests:
		return domain.NewTransientError(fmt.Errorf("%w: %w", domain.ErrRateLimited, cause))
	default:
		return domain.NewTransientError(cause)
	}
}

// ClassifyError wraps a transport or SDK error, recognising key problems by
// their message.
func ClassifyError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if MentionsAPIKey(err.Error()) {
		return domain.NewConfigurationError(fmt.Errorf("%s: %w", provider, err))
	}
	return domain.NewTransientError(fmt.Errorf("%s: %w", provider, err))
}

// MentionsAPIKey reports whether a provider message is about the API key.
func MentionsAPIKey(message string) bool {
	return strings.Contains(message, "API key") ||
		strings.Contains(message, "API_KEY") ||
		strings.Contains(strings.ToLower(message), "api key")
}
