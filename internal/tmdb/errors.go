// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// APIError is a non-2xx response from the metadata provider.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed with status %d", e.Endpoint, e.StatusCode)
}

// IsRetryable reports whether a provider error is worth retrying.
//
// Retryable: server-side failures (5xx), HTTP 429, network timeouts, and
// connection errors. Not retryable: client errors (other 4xx, typically a
// bad API key or malformed query) and context cancellation, where retrying
// can only repeat the failure or outlive the caller.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Transport-level failures surface as url.Error wrapping net errors;
	// anything else that reached the wire is treated as transient.
	return true
}
