package parser

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultRetryAfter = 60 * time.Second
	maxErrorBody      = 512
)

// RateLimitError is returned by a generator whose provider answered 429.
// FallbackGenerator uses RetryAfter to open that provider's circuit.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s generator rate limited, retry in %s: %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. A non-positive retryAfterSecs
// selects 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	d := time.Duration(retryAfterSecs) * time.Second
	if d <= 0 {
		d = defaultRetryAfter
	}
	return &RateLimitError{Err: err, RetryAfter: d, Provider: provider}
}

// StatusError is a non-200, non-429 provider response.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Body)
}

// CheckStatus turns a provider HTTP response into an error: nil for 200,
// *RateLimitError for 429, *StatusError otherwise. The body is truncated.
func CheckStatus(provider string, resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	statusErr := &StatusError{Provider: provider, Status: resp.StatusCode, Body: text}
	if resp.StatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(provider, statusErr, ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()))
	}
	return statusErr
}

// ParseRetryAfter reads a Retry-After header given either as delay seconds
// or as an HTTP date. It returns 0 when the value is missing, malformed or
// already past.
func ParseRetryAfter(val string, now time.Time) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return secs
	}
	at, err := http.ParseTime(val)
	if err != nil {
		return 0
	}
	if d := at.Sub(now); d > 0 {
		return int(d.Round(time.Second) / time.Second)
	}
	return 0
}
