package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit is returned when a backend answers 429.
type ErrRateLimit struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	msg := "rate limited"
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return withProvider(e.Provider, msg, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model produced something that is not the
// JSON document the request schema asks for.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and non-429 API errors.
// StatusCode is zero when no HTTP response was received.
type ErrProviderUnavailable struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	msg := "provider unavailable"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("provider unavailable (HTTP %d)", e.StatusCode)
	}
	return withProvider(e.Provider, msg, e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// rejected reports a client-side failure such as a bad key or an unknown
// model. Sending the same request again cannot succeed.
func (e *ErrProviderUnavailable) rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusTooManyRequests && e.StatusCode != http.StatusRequestTimeout
}

// ErrMaxTokensExceeded means the briefing was cut off at the token limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

func withProvider(provider, msg string, err error) string {
	if provider != "" {
		msg = provider + ": " + msg
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	return msg
}

// apiError classifies an HTTP status returned by a backend.
func apiError(provider string, status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Provider: provider, RetryAfter: parseRetryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{Provider: provider, StatusCode: status, Err: err}
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// and missing headers yield zero, which leaves the backoff schedule in charge.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// isPermanent reports errors that no amount of retrying will fix.
func isPermanent(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return true
	}
	var unavail *ErrProviderUnavailable
	return errors.As(err, &unavail) && unavail.rejected()
}
