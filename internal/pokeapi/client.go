// Package pokeapi is a read-only client for the public Pokémon data API.
//
// Only two endpoint shapes are consumed: the paged listing
// (/pokemon?limit=&offset=) and the detail resource (/pokemon/{name|id}).
// Every failure is reported as one of the sentinel errors below, wrapped
// with the request context; callers are expected to collapse them into a
// single "fetch failed" outcome.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meur/pokeforge/internal/models"
)

// DefaultBaseURL is the public API root
const DefaultBaseURL = "https://pokeapi.co/api/v2"

const maxBodyBytes = 10 * 1024 * 1024

var (
	ErrTransport = errors.New("pokeapi: transport failure")
	ErrStatus    = errors.New("pokeapi: unexpected status")
	ErrNotFound  = errors.New("pokeapi: not found")
	ErrMalformed = errors.New("pokeapi: malformed response")
)

// Client is the upstream surface used by the views
type Client interface {
	// ListPage fetches one page of summary entries
	ListPage(ctx context.Context, limit, offset int) ([]models.SummaryEntry, error)
	// GetDetail fetches a record by name or numeric id
	GetDetail(ctx context.Context, identifier string) (*models.DetailRecord, error)
	// GetDetailByURL fetches a record from a locator returned by ListPage
	GetDetailByURL(ctx context.Context, rawURL string) (*models.DetailRecord, error)
}

// Fetch kinds reported to an Observer
const (
	KindList   = "list"
	KindDetail = "detail"
)

// FetchEvent describes one completed upstream request
type FetchEvent struct {
	Kind     string
	URL      string
	Status   int // 0 when no response was received
	Duration time.Duration
	Err      error
}

// Observer is notified after every upstream request
type Observer func(FetchEvent)

// HTTPClient implements Client over net/http
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http = &http.Client{Transport: h.http.Transport, Timeout: d}
		}
	}
}

// WithObserver registers a hook called after every request
func WithObserver(o Observer) Option {
	return func(h *HTTPClient) { h.observer = o }
}

// New creates a client rooted at baseURL (DefaultBaseURL when empty)
func New(baseURL string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListPage fetches /pokemon?limit=&offset=
func (c *HTTPClient) ListPage(ctx context.Context, limit, offset int) ([]models.SummaryEntry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u := c.baseURL + "/pokemon?" + q.Encode()

	var page listResponse
	err := c.getJSON(ctx, KindList, u, &page, func() error {
		if page.Results == nil {
			return errors.New("missing results")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]models.SummaryEntry, 0, len(page.Results))
	for _, r := range page.Results {
		entries = append(entries, models.SummaryEntry{Name: r.Name, URL: r.URL})
	}
	return entries, nil
}

// GetDetail fetches /pokemon/{identifier}
func (c *HTTPClient) GetDetail(ctx context.Context, identifier string) (*models.DetailRecord, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}
	return c.GetDetailByURL(ctx, c.baseURL+"/pokemon/"+url.PathEscape(identifier))
}

// GetDetailByURL fetches a detail resource by absolute URL
func (c *HTTPClient) GetDetailByURL(ctx context.Context, rawURL string) (*models.DetailRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: bad detail locator %q", ErrMalformed, rawURL)
	}

	var p pokemonResponse
	var rec *models.DetailRecord
	err = c.getJSON(ctx, KindDetail, rawURL, &p, func() error {
		var err error
		rec, err = p.toRecord()
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// getJSON decodes the response at u into v and runs validate on it. The
// observer sees the final outcome, shape errors included.
func (c *HTTPClient) getJSON(ctx context.Context, kind, u string, v any, validate func() error) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		if c.observer != nil {
			c.observer(FetchEvent{Kind: kind, URL: u, Status: status, Duration: time.Since(start), Err: err})
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: new request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTransport, u, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s: http %d", ErrStatus, u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, u, err)
	}
	if validate != nil {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, u, err)
		}
	}
	return nil
}
