// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelmatch/reelmatch/internal/logging"
)

// RouterConfig holds routing-level settings.
type RouterConfig struct {
	RateLimitReqs   int
	RateLimitWindow time.Duration
}

// NewRouter wires all routes and middleware around the handler.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(correlationID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Health endpoints stay outside the rate limit so orchestrators can
	// probe freely.
	r.Get("/healthz", h.HealthLive)
	r.Get("/readyz", h.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitReqs,
				cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}

		r.Post("/catalog", h.BuildCatalog)
		r.Get("/genres/resolve", h.ResolveGenre)

		r.Route("/rooms/{roomID}/catalog", func(r chi.Router) {
			r.Get("/", h.RoomCatalog)
			r.Delete("/", h.ClearRoomCatalog)
		})
	})

	return r
}

// correlationID attaches a fresh correlation id to every request context
// and echoes it back in the response headers.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithNewCorrelationID(r.Context())
		w.Header().Set("X-Correlation-ID", logging.CorrelationIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
