package parser_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/parser"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := parser.NewRateLimitError("claude", fmt.Errorf("too many requests"), 30)

	assert.Equal(t, "claude generator rate limited, retry in 30s: too many requests", rlErr.Error())
}

func TestRateLimitError_ErrorsAs(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	wrapped := fmt.Errorf("extracting passport: %w", parser.NewRateLimitError("gemini", underlying, 30))

	var target *parser.RateLimitError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "gemini", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.ErrorIs(t, wrapped, underlying)
}

func TestNewRateLimitError_RetryAfter(t *testing.T) {
	tests := map[int]time.Duration{
		0:   60 * time.Second,
		-5:  60 * time.Second,
		30:  30 * time.Second,
		120: 2 * time.Minute,
	}
	for secs, want := range tests {
		assert.Equal(t, want, parser.NewRateLimitError("openai", fmt.Errorf("err"), secs).RetryAfter, secs)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 10, 21, 7, 28, 0, 0, time.UTC)

	assert.Equal(t, 0, parser.ParseRetryAfter("", now))
	assert.Equal(t, 30, parser.ParseRetryAfter(" 30 ", now))
	assert.Equal(t, 0, parser.ParseRetryAfter("soon", now))
	assert.Equal(t, 90, parser.ParseRetryAfter("Wed, 21 Oct 2026 07:29:30 GMT", now))
	assert.Equal(t, 0, parser.ParseRetryAfter("Wed, 21 Oct 2026 07:00:00 GMT", now))
}

func TestCheckStatus(t *testing.T) {
	ok := &http.Response{StatusCode: http.StatusOK}
	assert.NoError(t, parser.CheckStatus("claude", ok, nil))

	limited := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": []string{"12"}}}
	err := parser.CheckStatus("gemini", limited, []byte(`{"error":"quota"}`))
	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 12*time.Second, rlErr.RetryAfter)
	var statusErr *parser.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Status)

	failed := &http.Response{StatusCode: http.StatusBadGateway, Header: http.Header{}}
	err = parser.CheckStatus("openai", failed, []byte(strings.Repeat("x", 2000)))
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, err.Error(), "openai API error (status 502)")
	assert.Len(t, statusErr.Body, 515)
	assert.False(t, errors.As(err, &rlErr))
}
