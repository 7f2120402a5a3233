// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package tmdb implements the metadata provider client: rate-limited,
// retrying HTTP access to the discover and genre endpoints, a circuit
// breaker wrapper, and the embedded fallback catalog used when the
// provider is unavailable.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/logging"
	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// GenreMode controls how multiple genre ids combine in a discover query.
type GenreMode string

const (
	// GenreModeAll requires every listed genre (comma-joined, AND).
	GenreModeAll GenreMode = "all"

	// GenreModeAny accepts any listed genre (pipe-joined, OR).
	GenreModeAny GenreMode = "any"
)

// DiscoverRequest describes one page of a discover query.
//
// GenreIDs must already be in the taxonomy of the target media type; the
// discovery layer translates ids before building requests.
type DiscoverRequest struct {
	MediaType models.MediaType
	GenreIDs  []int
	GenreMode GenreMode
	Page      int

	// OriginalLanguages, when set, narrows results server-side to these
	// original languages (pipe-joined). The quality gate re-checks the
	// same whitelist post-fetch.
	OriginalLanguages []string

	// MinVoteCount, when positive, asks the provider for titles with at
	// least this many votes so pages are not dominated by obscure entries.
	MinVoteCount int
}

// DiscoverPage is one page of discover results.
type DiscoverPage struct {
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"total_pages"`
	TotalResults int                   `json:"total_results"`
	Results      []models.RawCandidate `json:"results"`
}

// Genre is one entry of a provider genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the provider's genre vocabulary for one media type.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// Client is the low-level metadata provider client. It spaces requests
// through a shared rate limiter and retries retryable failures with
// exponential backoff. Wrap it in a ResilientClient for circuit breaking.
type Client struct {
	baseURL  string
	apiKey   string
	language string

	httpClient *http.Client
	limiter    *rate.Limiter
	retry      config.RetryConfig
}

// NewClient creates a provider client from configuration.
//
// The rate limiter enforces cfg.MinRequestInterval between requests
// process-wide, with a burst of one, matching the provider's per-key quota
// expectations.
func NewClient(cfg *config.TMDBConfig) *Client {
	var limiter *rate.Limiter
	if cfg.MinRequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		retry:      cfg.Retry,
	}
}

// Discover fetches one page of discover results for the request.
func (c *Client) Discover(ctx context.Context, req DiscoverRequest) (*DiscoverPage, error) {
	if !req.MediaType.Valid() {
		return nil, models.ErrInvalidMediaType
	}

	endpoint := "discover/" + string(req.MediaType)

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if len(req.GenreIDs) > 0 {
		params.Set("with_genres", joinGenreIDs(req.GenreIDs, req.GenreMode))
	}
	if len(req.OriginalLanguages) > 0 {
		params.Set("with_original_language", strings.Join(req.OriginalLanguages, "|"))
	}
	if req.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(req.MinVoteCount))
	}

	page := &DiscoverPage{}
	if err := c.makeRequest(ctx, endpoint, params, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Genres fetches the provider genre vocabulary for a media type. Used as a
// startup connectivity check and for diagnostics.
func (c *Client) Genres(ctx context.Context, mediaType models.MediaType) (*GenreList, error) {
	if !mediaType.Valid() {
		return nil, models.ErrInvalidMediaType
	}

	list := &GenreList{}
	if err := c.makeRequest(ctx, "genre/"+string(mediaType)+"/list", url.Values{}, list); err != nil {
		return nil, err
	}
	return list, nil
}

// joinGenreIDs renders genre ids in the provider's query syntax: commas
// mean AND, pipes mean OR.
func joinGenreIDs(ids []int, mode GenreMode) string {
	sep := ","
	if mode == GenreModeAny {
		sep = "|"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// makeRequest performs a provider GET with rate limiting and retries, and
// decodes the JSON response into result.
func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			metrics.ProviderRetries.WithLabelValues(endpoint).Inc()
			delay := c.backoffDelay(attempt)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		metrics.ProviderRateLimitWait.Observe(time.Since(waitStart).Seconds())

		start := time.Now()
		err := c.doRequest(ctx, reqURL, endpoint, result)
		if err == nil {
			metrics.RecordProviderRequest(endpoint, "success", time.Since(start))
			return nil
		}

		if !IsRetryable(err) {
			metrics.RecordProviderRequest(endpoint, "fatal_error", time.Since(start))
			return err
		}

		metrics.RecordProviderRequest(endpoint, "retryable_error", time.Since(start))
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("endpoint", endpoint).
			Int("attempt", attempt+1).
			Int("max_attempts", c.retry.MaxAttempts).
			Msg("provider request failed, will retry")
		lastErr = err
	}

	return fmt.Errorf("provider request exhausted %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

// doRequest performs a single HTTP attempt.
func (c *Client) doRequest(ctx context.Context, reqURL, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// backoffDelay computes the delay before the given retry attempt:
// base * multiplier^(attempt-1), capped at MaxDelay.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := float64(c.retry.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= c.retry.Multiplier
	}
	if capped := float64(c.retry.MaxDelay); delay > capped {
		delay = capped
	}
	return time.Duration(delay)
}

// readBodyForError reads a bounded prefix of an error response body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
