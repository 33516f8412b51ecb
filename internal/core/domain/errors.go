package domain

import "errors"

// Domain errors represent lookup failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a lookup was requested for a blank query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidLevel indicates an unknown hierarchy level name.
	ErrInvalidLevel = errors.New("invalid location level")

	// ErrConfiguration indicates the AI provider is missing credentials or is
	// otherwise misconfigured. Retrying will not help.
	ErrConfiguration = errors.New("configuration error")

	// ErrTransient indicates a network or service failure. Retrying may help.
	ErrTransient = errors.New("transient failure")

	// ErrMalformedResponse indicates the provider answered with a payload
	// that did not match the expected shape. It is a transient failure.
	ErrMalformedResponse = &wrappedError{msg: "malformed response", err: ErrTransient}

	// ErrLLMUnavailable indicates no LLM provider is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = &wrappedError{msg: "rate limited", err: ErrTransient}
)

// Messages shown to the user for each failure kind.
const (
	ConfigurationMessage = "API Configuration Error: Please check your API Key settings."
	FallbackMessage      = "Failed to fetch postal code data."
	RetryMessage         = "Something went wrong. Please try again."
)

// wrappedError is a sentinel that is also a member of a broader class.
type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.err }

// LookupError is a classified failure with a message suitable for display.
type LookupError struct {
	// Kind is ErrConfiguration or ErrTransient.
	Kind error

	// Message is shown to the user verbatim.
	Message string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *LookupError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return FallbackMessage
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *LookupError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewConfigurationError wraps cause as a configuration failure.
func NewConfigurationError(cause error) *LookupError {
	return &LookupError{Kind: ErrConfiguration, Message: ConfigurationMessage, Err: cause}
}

// NewTransientError wraps cause as a transient failure. The cause's own
// message is kept for display when it has one.
func NewTransientError(cause error) *LookupError {
	msg := FallbackMessage
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &LookupError{Kind: ErrTransient, Message: msg, Err: cause}
}

// UserMessage returns the text to show for a failed search.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LookupError
	if errors.As(err, &le) {
		return le.Error()
	}
	if errors.Is(err, ErrConfiguration) {
		return ConfigurationMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return RetryMessage
}

// IsConfigurationError reports whether err is a configuration failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
