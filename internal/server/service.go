// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/logging"
)

// Service runs the HTTP server under suture supervision.
type Service struct {
	server          *http.Server
	addr            string
	shutdownTimeout time.Duration
}

// NewService builds the supervised HTTP server from configuration.
func NewService(handler http.Handler, cfg config.ServerConfig) *Service {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return &Service{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.Timeout,
			WriteTimeout:      cfg.Timeout,
			IdleTimeout:       120 * time.Second,
		},
		addr:            addr,
		shutdownTimeout: 10 * time.Second,
	}
}

// Serve implements suture.Service: it runs the listener until the context
// is canceled, then shuts down gracefully.
func (s *Service) Serve(ctx context.Context) error {
	log := logging.WithComponent("http-server")

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown incomplete, closing")
			_ = s.server.Close()
		}
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *Service) String() string {
	return "http-server"
}
