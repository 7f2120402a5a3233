// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package server

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/reelmatch/reelmatch/internal/cache"
	"github.com/reelmatch/reelmatch/internal/catalog"
	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/discovery"
	"github.com/reelmatch/reelmatch/internal/models"
	"github.com/reelmatch/reelmatch/internal/tmdb"
)

// stubFetcher serves one fixed page of results for every discover call.
type stubFetcher struct {
	results []models.RawCandidate
}

func (f *stubFetcher) Discover(context.Context, tmdb.DiscoverRequest) (*tmdb.DiscoverPage, error) {
	return &tmdb.DiscoverPage{Page: 1, TotalPages: 1, Results: f.results}, nil
}

type stubBreaker struct {
	state gobreaker.State
}

func (b *stubBreaker) State() gobreaker.State { return b.state }

func stubResults(n int) []models.RawCandidate {
	out := make([]models.RawCandidate, n)
	for i := range out {
		id := int64(i + 1)
		out[i] = models.RawCandidate{
			ID:               id,
			Title:            fmt.Sprintf("Movie %d", id),
			ReleaseDate:      "2022-08-19",
			Overview:         fmt.Sprintf("A sufficiently descriptive synopsis for movie %d.", id),
			PosterPath:       fmt.Sprintf("/p%d.jpg", id),
			GenreIDs:         []int{28, 12},
			VoteAverage:      7.1,
			VoteCount:        300,
			Popularity:       90,
			OriginalLanguage: "es",
		}
	}
	return out
}

func newTestServer(t *testing.T, breaker BreakerStatus) (*httptest.Server, *catalog.Store) {
	t.Helper()

	store, err := catalog.Open(config.CatalogConfig{InMemory: true, TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	engine := discovery.NewEngine(&stubFetcher{results: stubResults(60)}, tmdb.FallbackCandidates, discovery.EngineConfig{
		TargetSize:      50,
		MaxPagesPerTier: 3,
		Languages:       []string{"en", "es"},
		Gate:            discovery.DefaultGateConfig(),
	})
	svc := discovery.NewService(engine, cache.New(30*time.Minute, 100), store, 50, rand.New(rand.NewSource(1)))

	handler := NewHandler(svc, store, breaker)
	ts := httptest.NewServer(NewRouter(handler, RouterConfig{RateLimitReqs: 0}))
	t.Cleanup(ts.Close)
	return ts, store
}

func decodeResponse(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var out APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestHealthLive(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if out := decodeResponse(t, resp); !out.Success {
		t.Error("expected a success envelope")
	}
}

func TestHealthReadyDegradedWhenCircuitOpen(t *testing.T) {
	ts, _ := newTestServer(t, &stubBreaker{state: gobreaker.StateOpen})

	resp, err := http.Get(ts.URL + "/readyz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 while the provider circuit is open", resp.StatusCode)
	}
}

func TestHealthReadyOK(t *testing.T) {
	ts, _ := newTestServer(t, &stubBreaker{state: gobreaker.StateClosed})

	resp, err := http.Get(ts.URL + "/readyz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBuildCatalog(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	body, _ := json.Marshal(models.FilterCriteria{
		MediaType: models.MediaTypeMovie,
		GenreIDs:  []int{28, 12},
	})
	resp, err := http.Post(ts.URL+"/api/v1/catalog", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Correlation-ID") == "" {
		t.Error("missing X-Correlation-ID header")
	}

	out := decodeResponse(t, resp)
	raw, _ := json.Marshal(out.Data)
	var batch models.Batch
	if err := json.Unmarshal(raw, &batch); err != nil {
		t.Fatalf("failed to decode batch payload: %v", err)
	}
	if batch.Len() != 50 {
		t.Errorf("batch has %d candidates, want 50", batch.Len())
	}
	if batch.Provenance != models.ProvenanceAPI {
		t.Errorf("provenance = %q, want %q", batch.Provenance, models.ProvenanceAPI)
	}
}

func TestBuildCatalogRejectsBadRequests(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"invalid media type", `{"media_type":"book"}`},
		{"too many genres", `{"media_type":"movie","genre_ids":[28,12,35]}`},
		{"unknown genre id", `{"media_type":"movie","genre_ids":[10759]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/catalog", "application/json", bytes.NewBufferString(tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRoomCatalogPaging(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	body, _ := json.Marshal(models.FilterCriteria{
		MediaType: models.MediaTypeMovie,
		GenreIDs:  []int{28, 12},
		RoomID:    "r1",
	})
	resp, err := http.Post(ts.URL+"/api/v1/catalog", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("build status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/v1/rooms/r1/catalog?offset=10&limit=5")
	if err != nil {
		t.Fatalf("page read failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page status = %d, want 200", resp.StatusCode)
	}
	out := decodeResponse(t, resp)
	raw, _ := json.Marshal(out.Data)
	var page roomCatalogPage
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if page.Count != 5 || len(page.Candidates) != 5 {
		t.Errorf("page count = %d (%d candidates), want 5", page.Count, len(page.Candidates))
	}
	if page.Offset != 10 {
		t.Errorf("offset = %d, want 10", page.Offset)
	}
}

func TestRoomCatalogNotFound(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/rooms/ghost/catalog")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestClearRoomCatalog(t *testing.T) {
	ts, store := newTestServer(t, nil)
	ctx := context.Background()

	batch := &models.Batch{
		Criteria:   models.FilterCriteria{MediaType: models.MediaTypeMovie, RoomID: "r9"},
		Candidates: []models.Candidate{{ID: 1, MediaType: models.MediaTypeMovie, Title: "X"}},
		Provenance: models.ProvenanceAPI,
		CreatedAt:  time.Now().UTC(),
	}
	if err := store.StoreBatch(ctx, "r9", batch); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/rooms/r9/catalog", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if _, err := store.GetBatch(ctx, "r9"); err == nil {
		t.Error("batch still present after clear")
	}
}

func TestResolveGenre(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/genres/resolve?term=terror")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out := decodeResponse(t, resp)
	data, ok := out.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload type %T", out.Data)
	}
	if id, _ := data["id"].(float64); int(id) != 27 {
		t.Errorf("id = %v, want 27", data["id"])
	}
	if data["name"] != "Horror" {
		t.Errorf("name = %v, want Horror", data["name"])
	}

	resp, err = http.Get(ts.URL + "/api/v1/genres/resolve?term=cooking")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown term status = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
