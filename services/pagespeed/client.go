package pagespeed

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

const defaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Result is the part of a runPagespeed response the summary needs.
type Result struct {
	LighthouseResult *LighthouseResult `json:"lighthouseResult"`
}

type LighthouseResult struct {
	RequestedURL string              `json:"requestedUrl"`
	FinalURL     string              `json:"finalUrl"`
	Categories   map[string]Category `json:"categories"`
	Audits       map[string]Audit    `json:"audits"`
	RunWarnings  []string            `json:"runWarnings"`
}

type Category struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Score *float64 `json:"score"`
}

type Audit struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Score        *float64 `json:"score"`
	DisplayValue string   `json:"displayValue"`
}

// Client calls the PageSpeed Insights v5 API.
type Client struct {
	endpoint   string
	apiKey     string
	strategy   string
	httpClient *http.Client
}

// NewClient creates a client. Lighthouse runs take a while, hence the long timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		strategy:   "mobile",
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// WithEndpoint points the client at another server.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Run analyses target and returns the raw Lighthouse result.
func (c *Client) Run(ctx context.Context, target string) (*Result, error) {
	target, err := NormalizeURL(target)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("url", target)
	q.Set("category", "performance")
	q.Set("strategy", c.strategy)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("pagespeed API error (%d): %s", resp.StatusCode, string(body))
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode pagespeed response: %w", err)
	}
	return &res, nil
}

// NormalizeURL accepts "example.com" style input and returns an absolute http(s) URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	return u.String(), nil
}
