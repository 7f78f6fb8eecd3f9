package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
	language    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLanguage sets the langRestrict parameter sent on searches.
// An empty value disables language restriction.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// WithRateLimit overrides the outbound request rate.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.rateLimiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewClient creates a new Google Books client.
// Rate limited to 1 request per second by default; the unauthenticated API
// quota is tight.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
		logger:      logger,
		baseURL:     defaultBaseURL,
		language:    "de",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
