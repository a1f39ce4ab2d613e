package client

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Option func(*Client)

func WithHTTPClient(hc http.Client) Option {
	return func(c *Client) {
		c.Client = hc
	}
}

func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) {
		if p != nil {
			c.credentials = p
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithRateLimit caps outgoing requests per second. A zero limit leaves the
// client unlimited.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}
