package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults for the remote catalog.
const (
	DefaultBaseURL = "https://openapi.programming-hero.com/api"
	DefaultTimeout = 8 * time.Second
)

// Client fetches catalog data from the remote REST API. It never retries:
// a failed attempt is returned to the caller as-is.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient constructs a client for baseURL. An empty baseURL selects
// DefaultBaseURL and a non-positive timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env categoriesEnvelope
	if err := c.getJSON(ctx, "categories", &env, "categories"); err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(env.Categories))
	for _, p := range env.Categories {
		out = append(out, p.category())
	}
	return out, nil
}

// PlantsByCategory fetches the plants of one category, keeping the first
// WorkingSetLimit entries.
func (c *Client) PlantsByCategory(ctx context.Context, categoryID string) ([]PlantSummary, error) {
	var env plantsEnvelope
	if err := c.getJSON(ctx, "plants", &env, "category", categoryID); err != nil {
		return nil, err
	}
	return summarize(env.Plants), nil
}

// PlantDetail fetches one plant. ok is false when the API answers
// successfully but carries no plant for the id.
func (c *Client) PlantDetail(ctx context.Context, plantID string) (PlantDetail, bool, error) {
	var env detailEnvelope
	if err := c.getJSON(ctx, "plant", &env, "plant", plantID); err != nil {
		return PlantDetail{}, false, err
	}

	raw := env.Data
	if !isJSONObject(raw) {
		raw = env.Plants
	}
	if !isJSONObject(raw) {
		return PlantDetail{}, false, nil
	}

	var p plantPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return PlantDetail{}, false, &ParseError{Op: "plant", Err: err}
	}
	return p.detail(plantID), true, nil
}

// getJSON issues a GET against baseURL joined with elems and decodes the body
// into dst.
func (c *Client) getJSON(ctx context.Context, op string, dst any, elems ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, elems...)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	log := c.log.WithFields(logrus.Fields{"op": op, "url": endpoint})
	log.Debug("catalog request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("catalog request failed")
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "latency": time.Since(start)})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("catalog request returned non-success status")
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Body: drainError(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &NetworkError{Op: op, Err: err}
		}
		log.WithError(err).Warn("catalog response malformed")
		return &ParseError{Op: op, Err: err}
	}
	log.Debug("catalog request complete")
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
