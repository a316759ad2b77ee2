package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"github.com/five82/pokedex/internal/logging"
)

// Catalog defines the read operations the rest of the application uses.
// Implemented by *Client; swap it out in tests.
type Catalog interface {
	ListPage(ctx context.Context, query Query) Page
	ListBasic(ctx context.Context, query Query) []NamedResource
	FetchDetail(ctx context.Context, ref string) Pokemon
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

const (
	// DefaultBaseURL is the public PokéAPI root.
	DefaultBaseURL   = "https://pokeapi.co/api/v2/"
	defaultUserAgent = "pokedex/0.1"
)

// Options configure a Client.
type Options struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond int // zero or negative disables rate limiting
	Logger            logrus.FieldLogger
}

// Client talks to the PokéAPI over HTTP.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	limiter ratelimit.Limiter
	logger  logrus.FieldLogger
}

// Query selects a window of the /pokemon collection.
type Query struct {
	Limit  int
	Offset int
}

// NewClient builds a Client. No timeout and no retries are configured; the
// caller's context is the only way to abandon a request.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RequestsPerSecond > 0 {
		limiter = ratelimit.New(opts.RequestsPerSecond)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	httpClient := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		baseURL: base,
		http:    httpClient,
		limiter: limiter,
		logger:  logger.WithField("component", "pokeapi"),
	}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	if c == nil || c.http == nil {
		return nil
	}
	return c.http.Close()
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListPage fetches one window of the collection. Failures are logged and
// reported as an empty Page.
func (c *Client) ListPage(ctx context.Context, query Query) Page {
	page, err := c.GetPage(ctx, query)
	if err != nil {
		c.logFailure(ctx, "list pokemon failed", c.listURL(query), err)
		return Page{}
	}
	return page
}

// ListBasic fetches one window of the collection and returns only the entry
// references. Failures are logged and reported as an empty slice.
func (c *Client) ListBasic(ctx context.Context, query Query) []NamedResource {
	page := c.ListPage(ctx, query)
	if len(page.Results) == 0 {
		return []NamedResource{}
	}
	return page.Results
}

// FetchDetail fetches the record behind an absolute URL from a list result.
// Failures are logged and reported as the zero Pokemon.
func (c *Client) FetchDetail(ctx context.Context, ref string) Pokemon {
	p, err := c.GetDetail(ctx, ref)
	if err != nil {
		c.logFailure(ctx, "fetch pokemon detail failed", ref, err)
		return Pokemon{}
	}
	return p
}

// GetPage is the error-returning form of ListPage.
func (c *Client) GetPage(ctx context.Context, query Query) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	var raw struct {
		Count    *int            `json:"count"`
		Next     *string         `json:"next"`
		Previous *string         `json:"previous"`
		Results  []NamedResource `json:"results"`
	}
	if err := c.get(ctx, c.listURL(query), &raw); err != nil {
		return Page{}, err
	}
	if raw.Count == nil || raw.Results == nil {
		return Page{}, fmt.Errorf("%w: list payload missing count or results", ErrMalformed)
	}
	page := Page{Count: *raw.Count, Results: raw.Results}
	if raw.Next != nil {
		page.Next = *raw.Next
	}
	if raw.Previous != nil {
		page.Previous = *raw.Previous
	}
	return page, nil
}

// GetDetail is the error-returning form of FetchDetail.
func (c *Client) GetDetail(ctx context.Context, ref string) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(ref) == "" {
		return Pokemon{}, fmt.Errorf("detail url required")
	}
	var p Pokemon
	if err := c.get(ctx, ref, &p); err != nil {
		return Pokemon{}, err
	}
	if !p.Valid() {
		return Pokemon{}, fmt.Errorf("%w: detail payload missing id or name", ErrMalformed)
	}
	return p, nil
}

// DetailURL resolves a name, numeric id or absolute URL to a detail URL.
func (c *Client) DetailURL(nameOrID string) string {
	trimmed := strings.TrimSpace(nameOrID)
	if strings.Contains(trimmed, "://") {
		return trimmed
	}
	rel := &url.URL{Path: "pokemon/" + url.PathEscape(strings.ToLower(trimmed)) + "/"}
	return c.baseURL.ResolveReference(rel).String()
}

func (c *Client) listURL(query Query) string {
	values := url.Values{}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
		values.Set("offset", strconv.Itoa(max(query.Offset, 0)))
	}
	rel := &url.URL{Path: "pokemon", RawQuery: values.Encode()}
	return c.baseURL.ResolveReference(rel).String()
}

func (c *Client) get(ctx context.Context, reqURL string, dest any) error {
	c.limiter.Take()

	resp, err := c.http.R().
		SetContext(ctx).
		Get(reqURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetwork, reqURL, err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{URL: reqURL, StatusCode: code}
	}
	if err := json.Unmarshal([]byte(resp.String()), dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, msg, reqURL string, err error) {
	entry := c.logger.WithFields(logrus.Fields{
		"url":   reqURL,
		"error": err.Error(),
	})
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		entry = entry.WithField("status", statusErr.StatusCode)
	}
	if ctx.Err() != nil {
		entry.Debug(msg + " (cancelled)")
		return
	}
	entry.Error(msg)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
