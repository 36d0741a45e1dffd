// Package openfoodfacts is the product catalog client backed by the Open
// Food Facts public API.
package openfoodfacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nutritrack/internal/domain"
	"nutritrack/internal/infra"
)

const (
	defaultBaseURL   = "https://world.openfoodfacts.net"
	defaultUserAgent = "NutriTrack/1.0"
	defaultPageSize  = 20
	maxPageSize      = 100
	maxAltPageSize   = 50
	maxBodyBytes     = 4 << 20
)

// Options configures the Open Food Facts client.
type Options struct {
	BaseURL        string
	UserAgent      string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
	SearchTimeout  time.Duration
	MaxRetries     int
	Backoff        time.Duration
}

// Client performs product lookups and searches against Open Food Facts.
type Client struct {
	baseURL        string
	userAgent      string
	httpClient     *http.Client
	logger         *infra.Logger
	requestTimeout time.Duration
	searchTimeout  time.Duration
	maxRetries     int
	backoff        time.Duration
}

// NewClient constructs a client with defaults for every unset option.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 20 * time.Second
	}
	searchTimeout := opts.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = 30 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{
		baseURL:        baseURL,
		userAgent:      userAgent,
		httpClient:     httpClient,
		logger:         logger,
		requestTimeout: requestTimeout,
		searchTimeout:  searchTimeout,
		maxRetries:     maxRetries,
		backoff:        backoff,
	}
}

// Product fetches a single product. Unknown barcodes return domain.ErrNotFound.
func (c *Client) Product(ctx context.Context, barcode string) (*domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if !isBarcode(barcode) {
		return nil, fmt.Errorf("%w: barcode must be digits", domain.ErrValidation)
	}
	endpoint := c.baseURL + "/api/v2/product/" + url.PathEscape(barcode)
	params := url.Values{"fields": {productFields}}

	var resp productResponse
	status, err := c.getJSON(ctx, c.requestTimeout, endpoint, params, &resp)
	if status == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if resp.Status != 1 {
		return nil, domain.ErrNotFound
	}
	return toProduct(barcode, resp.Product), nil
}

// Search looks products up by free text. It tries the full-text search
// first, then the structured v2 search, then scrapes the HTML result page.
// An empty slice means nothing matched.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	stages := []struct {
		name string
		run  func(context.Context, string, int) ([]domain.SearchHit, error)
	}{
		{"fulltext", c.searchFullText},
		{"structured", c.searchStructured},
		{"html", c.searchHTML},
	}

	var lastErr error
	succeeded := false
	for _, stage := range stages {
		hits, err := stage.run(ctx, query, pageSize)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn().Err(err).Str("stage", stage.name).Str("query", query).Msg("product search stage failed")
			lastErr = err
			continue
		}
		succeeded = true
		if len(hits) > 0 {
			c.logger.Debug().Str("stage", stage.name).Int("hits", len(hits)).Msg("product search")
			return hits, nil
		}
	}
	if !succeeded && lastErr != nil {
		return nil, lastErr
	}
	return []domain.SearchHit{}, nil
}

func (c *Client) searchFullText(ctx context.Context, query string, pageSize int) ([]domain.SearchHit, error) {
	params := url.Values{
		"search_terms":  {query},
		"search_simple": {"1"},
		"action":        {"process"},
		"json":          {"1"},
		"page_size":     {strconv.Itoa(pageSize)},
		"fields":        {searchFields},
	}
	var resp searchResponse
	if _, err := c.getJSON(ctx, c.searchTimeout, c.baseURL+"/cgi/search.pl", params, &resp); err != nil {
		return nil, err
	}
	return hitsFrom(resp.Products, pageSize), nil
}

func (c *Client) searchStructured(ctx context.Context, query string, pageSize int) ([]domain.SearchHit, error) {
	params := url.Values{"fields": {searchFields}}
	if isBarcode(query) && len(query) >= 8 {
		params.Set("code", query)
		params.Set("page_size", "1")
	} else {
		if pageSize > maxAltPageSize {
			pageSize = maxAltPageSize
		}
		params.Set("page_size", strconv.Itoa(pageSize))
		params.Set("brands_tags", strings.ReplaceAll(strings.ToLower(query), " ", "-"))
	}
	var resp searchResponse
	if _, err := c.getJSON(ctx, c.requestTimeout, c.baseURL+"/api/v2/search", params, &resp); err != nil {
		return nil, err
	}
	return hitsFrom(resp.Products, pageSize), nil
}

func (c *Client) searchHTML(ctx context.Context, query string, pageSize int) ([]domain.SearchHit, error) {
	params := url.Values{
		"search_terms":  {query},
		"search_simple": {"1"},
		"action":        {"process"},
	}
	body, _, err := c.get(ctx, c.searchTimeout, c.baseURL+"/cgi/search.pl", params, "text/html")
	if err != nil {
		return nil, err
	}
	return scrapeSearchPage(bytes.NewReader(body), pageSize)
}

func hitsFrom(products []offProduct, limit int) []domain.SearchHit {
	hits := make([]domain.SearchHit, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.Code) == "" {
			continue
		}
		hits = append(hits, toHit(p))
		if len(hits) == limit {
			break
		}
	}
	return hits
}

func (c *Client) getJSON(ctx context.Context, timeout time.Duration, endpoint string, params url.Values, out any) (int, error) {
	body, status, err := c.get(ctx, timeout, endpoint, params, "application/json")
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return status, fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return status, nil
}

// get performs a GET with retries on transport failures and on 429/5xx
// answers, backing off exponentially between attempts.
func (c *Client) get(ctx context.Context, timeout time.Duration, endpoint string, params url.Values, accept string) ([]byte, int, error) {
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			c.logger.Debug().Str("url", endpoint).Int("attempt", attempt).Dur("wait", wait).Msg("retrying open food facts request")
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, 0, ctx.Err()
			case <-timer.C:
			}
		}

		body, status, err := c.do(ctx, timeout, target, accept)
		if err == nil {
			return body, status, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, status, ctx.Err()
		}
		if status != 0 && !retryable(status) {
			return nil, status, err
		}
	}
	return nil, 0, lastErr
}

func (c *Client) do(ctx context.Context, timeout time.Duration, target, accept string) ([]byte, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}
	c.logger.Debug().
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("open food facts request")
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, resp.StatusCode, &StatusError{Code: resp.StatusCode}
	}
	return body, resp.StatusCode, nil
}

// StatusError reports a non-2xx answer from Open Food Facts.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("open food facts: unexpected status %d", e.Code)
}

// Is makes StatusError match domain.ErrUpstream.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUpstream
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func isBarcode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var _ domain.ProductCatalog = (*Client)(nil)
