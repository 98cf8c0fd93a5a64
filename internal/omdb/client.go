package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source defines the lookups the UI needs from the movie database.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	Search(ctx context.Context, query Query) (SearchResult, error)
	Detail(ctx context.Context, id string) (Movie, error)
	TitleURL(id string) string
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	siteURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	DefaultAPIBase  = "https://www.omdbapi.com"
	DefaultSiteBase = "http://www.imdb.com"
	defaultTimeout  = 15 * time.Second
	defaultAgent    = "flicks/0.1"
)

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	APIBase   string
	SiteBase  string
	APIKey    string
	Timeout   time.Duration // negative disables the timeout
	UserAgent string
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.APIBase, DefaultAPIBase)
	if err != nil {
		return nil, fmt.Errorf("parse api base: %w", err)
	}
	site, err := parseBaseURL(opts.SiteBase, DefaultSiteBase)
	if err != nil {
		return nil, fmt.Errorf("parse site base: %w", err)
	}

	timeout := opts.Timeout
	switch {
	case timeout == 0:
		timeout = defaultTimeout
	case timeout < 0:
		timeout = 0
	}

	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = defaultAgent
	}

	return &Client{
		baseURL:   base,
		siteURL:   site,
		apiKey:    strings.TrimSpace(opts.APIKey),
		http:      &http.Client{Timeout: timeout},
		userAgent: agent,
	}, nil
}

// Search runs a title search. A well-formed "no match" answer is reported
// through SearchResult.Found rather than as an error.
func (c *Client) Search(ctx context.Context, query Query) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("client is nil")
	}
	term := strings.TrimSpace(query.Term)
	if term == "" {
		return SearchResult{}, fmt.Errorf("search term required")
	}

	var payload searchResponse
	if err := c.FetchJSON(ctx, c.SearchURL(query), &payload); err != nil {
		return SearchResult{}, err
	}
	if !payload.ok() {
		return SearchResult{Message: payload.Error}, nil
	}
	return SearchResult{Found: true, Items: payload.Search}, nil
}

// Detail fetches the full record for a single title.
func (c *Client) Detail(ctx context.Context, id string) (Movie, error) {
	if c == nil {
		return Movie{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Movie{}, fmt.Errorf("title id required")
	}

	var payload detailResponse
	if err := c.FetchJSON(ctx, c.DetailURL(id), &payload); err != nil {
		return Movie{}, err
	}
	if payload.failed() {
		return Movie{}, &LookupError{ID: id, Message: payload.Error}
	}
	return payload.Movie, nil
}

// SearchURL renders the request URL for a search. Year is passed through
// verbatim, empty included.
func (c *Client) SearchURL(query Query) string {
	values := c.values()
	values.Set("s", strings.TrimSpace(query.Term))
	values.Set("y", query.Year)
	values.Set("r", "json")
	return c.resolve(values)
}

// DetailURL renders the request URL for a full-plot title lookup.
func (c *Client) DetailURL(id string) string {
	values := c.values()
	values.Set("i", id)
	values.Set("y", "")
	values.Set("plot", "full")
	values.Set("r", "json")
	return c.resolve(values)
}

// TitleURL returns the public page for a title on the source site.
func (c *Client) TitleURL(id string) string {
	if c == nil {
		return DefaultSiteBase + "/title/" + url.PathEscape(id)
	}
	rel := &url.URL{Path: "/title/" + id}
	return c.siteURL.ResolveReference(rel).String()
}

// FetchJSON issues one GET against rawURL and decodes the body into dest.
// Any status other than 200 is a *StatusError; a request that never
// completes is a *NetworkError.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: redact(rawURL), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: redact(rawURL), StatusCode: resp.StatusCode, Status: statusText(resp)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) values() url.Values {
	values := url.Values{}
	if c.apiKey != "" {
		values.Set("apikey", c.apiKey)
	}
	return values
}

func (c *Client) resolve(values url.Values) string {
	rel := &url.URL{Path: "/", RawQuery: values.Encode()}
	return c.baseURL.ResolveReference(rel).String()
}

// statusText strips the numeric prefix net/http puts on resp.Status.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// redact hides the api key when a URL ends up in an error or a log line.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("apikey") == "" {
		return rawURL
	}
	q.Set("apikey", "redacted")
	u.RawQuery = q.Encode()
	return u.String()
}

func parseBaseURL(raw, fallback string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = fallback
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
