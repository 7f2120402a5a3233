// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/reelmatch/reelmatch/internal/catalog"
	"github.com/reelmatch/reelmatch/internal/discovery"
	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/models"
)

// BreakerStatus exposes the provider circuit state for readiness checks.
// Satisfied by *tmdb.ResilientClient.
type BreakerStatus interface {
	State() gobreaker.State
}

// Handler holds the endpoint implementations and their dependencies.
type Handler struct {
	service *discovery.Service
	store   *catalog.Store
	breaker BreakerStatus
}

// NewHandler creates the endpoint handler. store and breaker may be nil in
// reduced deployments; the affected endpoints then report accordingly.
func NewHandler(service *discovery.Service, store *catalog.Store, breaker BreakerStatus) *Handler {
	return &Handler{service: service, store: store, breaker: breaker}
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports readiness: degraded while the provider circuit is
// open, since catalog builds would only serve the fallback list.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "provider": "unknown"}

	if h.breaker != nil {
		switch h.breaker.State() {
		case gobreaker.StateOpen:
			status["status"] = "degraded"
			status["provider"] = "circuit_open"
			writeJSON(w, r, http.StatusServiceUnavailable, status)
			return
		case gobreaker.StateHalfOpen:
			status["provider"] = "circuit_half_open"
		default:
			status["provider"] = "ok"
		}
	}

	writeJSON(w, r, http.StatusOK, status)
}

// BuildCatalog builds (or serves from cache) the catalog for the posted
// criteria.
func (h *Handler) BuildCatalog(w http.ResponseWriter, r *http.Request) {
	var criteria models.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if criteria.RoomID != "" {
		ctx = logging.ContextWithRoomID(ctx, criteria.RoomID)
	}

	batch, err := h.service.BuildCatalog(ctx, criteria)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidMediaType),
			errors.Is(err, models.ErrTooManyGenres),
			errors.Is(err, discovery.ErrUnknownGenre):
			writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, discovery.ErrEmptyResult):
			writeError(w, r, http.StatusUnprocessableEntity, ErrCodeBadRequest, err.Error())
		default:
			logging.CtxErr(ctx, err).Msg("catalog build failed")
			writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "catalog build failed")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, batch)
}

// roomCatalogPage is the payload for paged room catalog reads.
type roomCatalogPage struct {
	RoomID     string             `json:"room_id"`
	Offset     int                `json:"offset"`
	Count      int                `json:"count"`
	Candidates []models.Candidate `json:"candidates"`
}

// RoomCatalog pages through a room's stored candidate order.
func (h *Handler) RoomCatalog(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "catalog store not configured")
		return
	}

	roomID := chi.URLParam(r, "roomID")
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 10)
	if limit > 50 {
		limit = 50
	}

	page, err := h.store.GetPage(r.Context(), roomID, offset, limit)
	if err != nil {
		if errors.Is(err, catalog.ErrBatchNotFound) {
			writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "no catalog stored for room")
			return
		}
		logging.CtxErr(r.Context(), err).Str("room_id", roomID).Msg("room catalog read failed")
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to read room catalog")
		return
	}

	writeJSON(w, r, http.StatusOK, roomCatalogPage{
		RoomID:     roomID,
		Offset:     offset,
		Count:      len(page),
		Candidates: page,
	})
}

// ClearRoomCatalog removes a room's stored catalog.
func (h *Handler) ClearRoomCatalog(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "catalog store not configured")
		return
	}

	roomID := chi.URLParam(r, "roomID")
	if err := h.store.ClearBatch(r.Context(), roomID); err != nil {
		logging.CtxErr(r.Context(), err).Str("room_id", roomID).Msg("room catalog clear failed")
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to clear room catalog")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"room_id": roomID, "status": "cleared"})
}

// ResolveGenre maps a Spanish or English genre term to its id and
// canonical name, for clients building criteria from free-text input.
func (h *Handler) ResolveGenre(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "term query parameter is required")
		return
	}

	id, ok := discovery.GenreIDByName(term)
	if !ok {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "unknown genre term")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"term": term,
		"id":   id,
		"name": discovery.GenreNameByID(id),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
