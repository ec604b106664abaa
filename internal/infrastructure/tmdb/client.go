package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// UpstreamError is the only error shape the gateway exposes for catalog
// failures. The upstream response body is never propagated.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb: upstream error (status %d): %s", e.Status, e.Message)
}

// Client is a stateless gateway to the TMDB HTTP API. Every call is bounded
// by the underlying http.Client timeout and the caller's context.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Trending returns this week's trending movies.
func (c *Client) Trending(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "/trending/movie/week", nil)
}

// TopRated returns the top rated movies.
func (c *Client) TopRated(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "/movie/top_rated", nil)
}

// Search runs a title search for the given query.
func (c *Client) Search(ctx context.Context, query string) ([]MovieSummary, error) {
	return c.list(ctx, "/search/movie", url.Values{"query": {query}})
}

// DiscoverByGenre returns movies for a genre, most popular first.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64) ([]MovieSummary, error) {
	return c.list(ctx, "/discover/movie", url.Values{
		"with_genres": {strconv.FormatInt(genreID, 10)},
		"sort_by":     {"popularity.desc"},
	})
}

// Details fetches a single movie with its video metadata appended.
func (c *Client) Details(ctx context.Context, movieID int64) (*MovieDetail, error) {
	detail := &MovieDetail{}
	path := "/movie/" + strconv.FormatInt(movieID, 10)
	if err := c.get(ctx, path, url.Values{"append_to_response": {"videos"}}, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (c *Client) list(ctx context.Context, path string, params url.Values) ([]MovieSummary, error) {
	out := &listResponse{}
	if err := c.get(ctx, path, params, out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		return []MovieSummary{}, nil
	}
	return out.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &UpstreamError{Status: http.StatusInternalServerError, Message: "invalid request"}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		// Network failure or timeout; surface as an upstream error rather
		// than hang or leak transport detail.
		c.logWarn(path, 0, err)
		return &UpstreamError{Status: http.StatusBadGateway, Message: "catalog unavailable"}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logWarn(path, res.StatusCode, nil)
		return &UpstreamError{Status: res.StatusCode, Message: "catalog request failed"}
	}

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		c.logWarn(path, res.StatusCode, err)
		return &UpstreamError{Status: http.StatusBadGateway, Message: "malformed catalog response"}
	}
	return nil
}

func (c *Client) logWarn(path string, status int, err error) {
	if c.logger == nil {
		return
	}
	entry := c.logger.WithFields(logrus.Fields{"path": path, "status": status})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("tmdb request failed")
}
