package trackapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	userAgent      = "catstronauts-gateway/1.0"
	requestTimeout = 10 * time.Second

	// Upper bounds on how much of an upstream body is read.
	maxResponseSize  = 4 << 20
	maxErrorBodySize = 1 << 10

	// OperationIDHeader carries the GraphQL operation id to the REST API.
	OperationIDHeader = "X-Operation-ID"
)

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Catstronauts REST API client. It performs exactly one HTTP
// call per operation and keeps no state besides its configuration.
type Client struct {
	baseURL     string
	httpClient  HTTPDoer
	operationID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithOperationID tags every request with the given operation id.
func WithOperationID(id string) Option {
	return func(c *Client) {
		c.operationID = id
	}
}

// NewHTTPClient returns the HTTP client used when none is supplied.
// It is safe to share between Clients.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// NewClient creates a new track API client from the provided configuration.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: NewHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTracksForHome fetches the tracks shown on the home page, in upstream order.
// Returns an empty slice (not nil) if there are none.
func (c *Client) GetTracksForHome(ctx context.Context) ([]Track, error) {
	var tracks []Track
	if err := c.do(ctx, http.MethodGet, "tracks", &tracks); err != nil {
		return nil, fmt.Errorf("fetching tracks: %w", err)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return tracks, nil
}

// GetTrack fetches a single track. Returns an error matching ErrNotFound
// if the track does not exist.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	path, err := resourcePath("track", trackID)
	if err != nil {
		return nil, err
	}

	var track *Track
	if err := c.do(ctx, http.MethodGet, path, &track); err != nil {
		return nil, fmt.Errorf("fetching track %s: %w", trackID, err)
	}
	if track == nil {
		return nil, fmt.Errorf("fetching track %s: %w", trackID, ErrNotFound)
	}
	return track, nil
}

// GetAuthor fetches a single author. Returns an error matching ErrNotFound
// if the author does not exist.
func (c *Client) GetAuthor(ctx context.Context, authorID string) (*Author, error) {
	path, err := resourcePath("author", authorID)
	if err != nil {
		return nil, err
	}

	var author *Author
	if err := c.do(ctx, http.MethodGet, path, &author); err != nil {
		return nil, fmt.Errorf("fetching author %s: %w", authorID, err)
	}
	if author == nil {
		return nil, fmt.Errorf("fetching author %s: %w", authorID, ErrNotFound)
	}
	return author, nil
}

// GetTrackModules fetches the modules of a track, in upstream order.
func (c *Client) GetTrackModules(ctx context.Context, trackID string) ([]Module, error) {
	path, err := resourcePath("track", trackID, "modules")
	if err != nil {
		return nil, err
	}

	var modules []Module
	if err := c.do(ctx, http.MethodGet, path, &modules); err != nil {
		return nil, fmt.Errorf("fetching modules for track %s: %w", trackID, err)
	}
	if modules == nil {
		modules = []Module{}
	}
	return modules, nil
}

// IncrementTrackViews bumps the view counter of a track and returns the
// updated track. Any non-2xx answer is reported as *UpstreamError, and so
// is a 2xx answer without a track (as 502 Bad Gateway).
func (c *Client) IncrementTrackViews(ctx context.Context, trackID string) (*Track, error) {
	path, err := resourcePath("track", trackID, "numberOfViews")
	if err != nil {
		return nil, err
	}

	var track *Track
	if err := c.do(ctx, http.MethodPatch, path, &track); err != nil {
		return nil, fmt.Errorf("incrementing views for track %s: %w", trackID, err)
	}
	if track == nil {
		return nil, fmt.Errorf("incrementing views for track %s: %w", trackID, &UpstreamError{
			Method:     http.MethodPatch,
			Path:       "/" + path,
			StatusCode: http.StatusBadGateway,
			Body:       "upstream returned no track",
		})
	}
	return track, nil
}

// resourcePath joins a collection name with an escaped id and optional
// sub-resource. Dot segments are rejected since PathEscape leaves them as is.
func resourcePath(collection, id string, sub ...string) (string, error) {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return "", fmt.Errorf("%s id %q: %w", collection, id, ErrInvalidID)
	}
	parts := append([]string{collection, url.PathEscape(id)}, sub...)
	return strings.Join(parts, "/"), nil
}

// do performs a single HTTP request and decodes a successful JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.operationID != "" {
		req.Header.Set(OperationIDHeader, c.operationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &UpstreamError{
			Method:     method,
			Path:       "/" + path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxResponseSize {
		return fmt.Errorf("reading response body: exceeds %d bytes", maxResponseSize)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
