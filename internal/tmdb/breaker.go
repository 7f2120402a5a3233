// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// ResilientClient wraps Client with a circuit breaker so a dead or
// flapping provider fails fast instead of queueing retries behind the
// rate limiter.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for
// its reset timeout. Tests exercise state transitions through the wrapped
// client with short configured timeouts.
type ResilientClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewResilientClient creates a provider client with circuit breaker
// protection.
//
// Breaker behavior, mapped from configuration:
//   - Opens after cfg.Breaker.FailureThreshold consecutive failures
//   - Stays open for cfg.Breaker.ResetTimeout, then admits one probe
//   - While closed, counts reset every cfg.Breaker.MonitoringPeriod
func NewResilientClient(cfg *config.TMDBConfig) *ResilientClient {
	return newResilientClient(NewClient(cfg), &cfg.Breaker)
}

func newResilientClient(client *Client, bcfg *config.BreakerConfig) *ResilientClient {
	cbName := "tmdb-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	threshold := uint32(bcfg.FailureThreshold)
	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1, // single probe request in half-open state
		Interval:    bcfg.MonitoringPeriod,
		Timeout:     bcfg.ResetTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("opening provider circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("provider circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &ResilientClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute runs a provider call through the circuit breaker and records
// per-request metrics.
func (rc *ResilientClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := rc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(rc.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(rc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(rc.name, "success").Inc()
	return result, nil
}

// castResult type-casts a circuit breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Discover fetches one discover page with circuit breaker protection.
func (rc *ResilientClient) Discover(ctx context.Context, req DiscoverRequest) (*DiscoverPage, error) {
	return castResult[DiscoverPage](rc.execute(func() (interface{}, error) {
		return rc.client.Discover(ctx, req)
	}))
}

// Genres fetches a genre vocabulary with circuit breaker protection.
func (rc *ResilientClient) Genres(ctx context.Context, mediaType models.MediaType) (*GenreList, error) {
	return castResult[GenreList](rc.execute(func() (interface{}, error) {
		return rc.client.Genres(ctx, mediaType)
	}))
}

// Ping verifies provider connectivity by fetching the movie genre list.
func (rc *ResilientClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := rc.Genres(ctx, models.MediaTypeMovie)
	return err
}

// State returns the current breaker state, for readiness reporting.
func (rc *ResilientClient) State() gobreaker.State {
	return rc.cb.State()
}

// stateToFloat converts circuit breaker state to a numeric metric value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
