// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

// Package tmdb is a minimal client for The Movie Database v3 API plus the
// genre resolver the catalog service uses to build genre rows.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/watchly/internal/metrics"
)

// DefaultBaseURL is the public TMDB v3 endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

var (
	// ErrNotFound is returned when TMDB has no record for an id.
	ErrNotFound = errors.New("tmdb: not found")

	// ErrUnauthorized is returned when TMDB rejects the API key.
	ErrUnauthorized = errors.New("tmdb: unauthorized")

	// ErrUnsupportedID is returned for ids that are neither IMDb ("tt...")
	// nor TMDB ("tmdb:N") ids.
	ErrUnsupportedID = errors.New("tmdb: unsupported id format")
)

// APIError is a non-2xx response other than 401 and 404.
type APIError struct {
	StatusCode    int
	StatusMessage string
}

func (e *APIError) Error() string {
	if e.StatusMessage != "" {
		return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.StatusMessage)
	}
	return fmt.Sprintf("tmdb: status %d", e.StatusCode)
}

// API is the subset of TMDB operations the service uses.
type API interface {
	FindByIMDbID(ctx context.Context, imdbID string) (*FindResult, error)
	MovieDetails(ctx context.Context, id int) (*Details, error)
	TVDetails(ctx context.Context, id int) (*Details, error)
	Ping(ctx context.Context) error
}

var _ API = (*Client)(nil)

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details is the part of a movie or TV details response we read.
type Details struct {
	ID     int     `json:"id"`
	Title  string  `json:"title,omitempty"`
	Name   string  `json:"name,omitempty"`
	Genres []Genre `json:"genres"`
}

// GenreNames returns the genre names in response order.
func (d *Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// FindResult is the TMDB id an IMDb id resolved to.
type FindResult struct {
	ID        int
	MediaType string // "movie" or "tv"
}

type findResponse struct {
	MovieResults []struct {
		ID int `json:"id"`
	} `json:"movie_results"`
	TVResults []struct {
		ID int `json:"id"`
	} `json:"tv_results"`
}

type errorResponse struct {
	StatusMessage string `json:"status_message"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// RequestsPerSecond and Burst bound the outbound request rate.
	// Zero RequestsPerSecond disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the TMDB v3 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a TMDB client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger,
	}
}

// FindByIMDbID resolves an IMDb id to a TMDB id. Movie matches take
// precedence over TV matches.
func (c *Client) FindByIMDbID(ctx context.Context, imdbID string) (*FindResult, error) {
	var resp findResponse
	err := c.get(ctx, "find", "/find/"+url.PathEscape(imdbID), url.Values{"external_source": {"imdb_id"}}, &resp)
	if err != nil {
		return nil, err
	}

	switch {
	case len(resp.MovieResults) > 0:
		return &FindResult{ID: resp.MovieResults[0].ID, MediaType: "movie"}, nil
	case len(resp.TVResults) > 0:
		return &FindResult{ID: resp.TVResults[0].ID, MediaType: "tv"}, nil
	default:
		return nil, fmt.Errorf("find %s: %w", imdbID, ErrNotFound)
	}
}

// MovieDetails fetches /movie/{id}.
func (c *Client) MovieDetails(ctx context.Context, id int) (*Details, error) {
	var d Details
	if err := c.get(ctx, "movie", "/movie/"+strconv.Itoa(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// TVDetails fetches /tv/{id}.
func (c *Client) TVDetails(ctx context.Context, id int) (*Details, error) {
	var d Details
	if err := c.get(ctx, "tv", "/tv/"+strconv.Itoa(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Ping checks that the API key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]interface{}
	return c.get(ctx, "configuration", "/configuration", nil, &out)
}

// get performs a rate-limited GET and decodes a 200 response into out.
// endpoint is the low-cardinality metrics label.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordMetadataRequest(endpoint, 0, time.Since(start))
		return fmt.Errorf("%s request: %w", endpoint, c.redactURL(err, path))
	}
	defer resp.Body.Close()
	metrics.RecordMetadataRequest(endpoint, resp.StatusCode, time.Since(start))

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("TMDB request")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", endpoint, path, ErrNotFound)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		var body errorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort error detail
		_ = json.Unmarshal(data, &body)                         //nolint:errcheck // best effort error detail
		return &APIError{StatusCode: resp.StatusCode, StatusMessage: body.StatusMessage}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// redactURL replaces the request URL in transport errors with one that has
// no query string, since the query carries the API key.
func (c *Client) redactURL(err error, path string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.baseURL + path
	}
	return err
}
