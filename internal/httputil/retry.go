// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the language model
// backends and URL uploads.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps the wait taken from a Retry-After header.
var MaxRetryAfter = 2 * time.Minute

// Retryable reports whether status signals a transient failure: 429 Too
// Many Requests, 502, 503, 504, or 529 (provider overloaded).
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		529:
		return true
	}
	return false
}

// StatusError is a non-2xx response. RetryAfter is set when the server sent
// a usable Retry-After header.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
	HasRetry   bool
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// NewStatusError builds a StatusError from resp and its already-read body.
func NewStatusError(resp *http.Response, body string) *StatusError {
	e := &StatusError{StatusCode: resp.StatusCode, Body: body}
	e.RetryAfter, e.HasRetry = ParseRetryAfter(resp.Header)
	return e
}

// Transient reports whether err is worth retrying: a StatusError with a
// Retryable status, or a network failure (connection refused or reset,
// timeout, truncated response). Context cancellation is never transient.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return Retryable(se.StatusCode)
	}
	var op *net.OpError
	if errors.As(err, &op) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// RetryAfterOf returns the server-requested wait carried by err, if any.
func RetryAfterOf(err error) (time.Duration, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.HasRetry {
		return se.RetryAfter, true
	}
	return 0, false
}

// DoWithRetry executes an HTTP request and retries Retryable responses with
// exponential backoff starting at RetryBaseDelay and doubling each attempt.
// A Retry-After header in seconds overrides the computed delay.
//
// maxRetries is the number of retries after the first attempt; 0 sends the
// request once. The request body must be replayable (req.GetBody set, as
// http.NewRequest does for bytes and strings readers). If the context is
// cancelled during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, logger *slog.Logger) (*http.Response, error) {
	maxRetries = max(maxRetries, 0)
	if logger == nil {
		logger = slog.Default()
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := Backoff(attempt)
		if d, ok := ParseRetryAfter(resp.Header); ok {
			backoff = d
		}
		logger.Warn("http.retry",
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
			"attempt", attempt+1,
			"max_retries", maxRetries,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Backoff returns the exponential delay before retry number attempt+1.
func Backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}

// ParseRetryAfter reads a Retry-After header given in whole seconds, capped
// at MaxRetryAfter. HTTP-date values are ignored.
func ParseRetryAfter(h http.Header) (time.Duration, bool) {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" || strings.TrimLeft(v, "0123456789") != "" {
		return 0, false
	}
	limit := int64(MaxRetryAfter / time.Second)
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil || secs > limit {
		// Only ErrRange is possible for an all-digit string.
		return MaxRetryAfter, true
	}
	return time.Duration(secs) * time.Second, true
}
