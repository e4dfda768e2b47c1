// Package api is the HTTP client for the recommendation service's graph
// endpoints: semantic search, preset browse categories, node-centered
// similarity, media detail and health. It implements the provider
// interfaces the explore package dispatches fetches against.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
	"github.com/vanderheijden86/reelgraph/pkg/version"
)

const (
	// DefaultTimeout bounds a single graph fetch.
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response we are willing to decode.
	maxBodySize = 8 << 20
)

// StatusError reports a non-2xx response. Callers mostly treat it like any
// other fetch failure; the code is kept for diagnostics.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 from the service, however deeply
// wrapped.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// Client talks to one recommendation service instance.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

// New builds a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base URL %q needs a scheme and host", baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "reel/" + version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Providers exposes the client as the three fetch providers the navigator
// issues requests against.
func (c *Client) Providers() explore.Providers {
	return explore.Providers{Search: c, Browse: c, Similar: c}
}

// graphEnvelope is the wire shape of every graph endpoint.
type graphEnvelope struct {
	Graph *model.GraphData `json:"graph"`
}

// SearchGraph runs a semantic free-text query and returns the result graph.
func (c *Client) SearchGraph(ctx context.Context, p explore.SearchParams) (*model.GraphData, error) {
	defer metrics.Timer(metrics.SearchFetch)()

	q := url.Values{}
	q.Set("q", p.Query)
	q.Set("graph", "true")
	if p.Filter.Valid() {
		q.Set("type", string(p.Filter))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var env graphEnvelope
	if err := c.getJSON(ctx, "/api/similarity/search", q, &env); err != nil {
		return nil, fmt.Errorf("api: SearchGraph: %w", err)
	}
	return orEmpty(env.Graph), nil
}

// BrowseGraph fetches the graph for one preset recommendation category.
func (c *Client) BrowseGraph(ctx context.Context, p explore.BrowseParams) (*model.GraphData, error) {
	defer metrics.Timer(metrics.BrowseFetch)()

	if !p.Category.Valid() {
		return nil, fmt.Errorf("api: BrowseGraph: unknown category %d", int(p.Category))
	}
	q := url.Values{}
	q.Set("crossMedia", strconv.FormatBool(p.CrossMedia))
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	path := "/api/recommendations/" + p.Category.Slug() + "/graph"
	var env graphEnvelope
	if err := c.getJSON(ctx, path, q, &env); err != nil {
		return nil, fmt.Errorf("api: BrowseGraph: %w", err)
	}
	return orEmpty(env.Graph), nil
}

// SimilarGraph fetches a similarity graph centered on one node.
func (c *Client) SimilarGraph(ctx context.Context, p explore.FocusParams) (*model.GraphData, error) {
	defer metrics.Timer(metrics.SimilarFetch)()

	if p.NodeID == "" {
		return nil, fmt.Errorf("api: SimilarGraph: empty node id")
	}
	q := url.Values{}
	if p.MediaType.Valid() {
		q.Set("type", string(p.MediaType))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Depth > 0 {
		q.Set("depth", strconv.Itoa(p.Depth))
	}

	path := "/api/similarity/nodes/" + url.PathEscape(p.NodeID) + "/graph"
	var env graphEnvelope
	if err := c.getJSON(ctx, path, q, &env); err != nil {
		return nil, fmt.Errorf("api: SimilarGraph: %w", err)
	}
	return orEmpty(env.Graph), nil
}

// Health pings the service. A nil error means it is reachable and ready.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", nil, &status); err != nil {
		return fmt.Errorf("api: Health: %w", err)
	}
	if status.Status != "" && status.Status != "ok" {
		return fmt.Errorf("api: Health: service reports %q", status.Status)
	}
	return nil
}

// getJSON performs a GET and decodes the JSON body into dst.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode}
	}

	defer metrics.Timer(metrics.GraphDecode)()
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// orEmpty normalizes a missing graph payload to an empty graph, so callers
// can rely on a non-nil result for successful fetches.
func orEmpty(g *model.GraphData) *model.GraphData {
	if g == nil {
		return &model.GraphData{}
	}
	return g
}
