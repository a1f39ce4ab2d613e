// Package client talks to the content backend that owns articles and
// positions. Every call returns the server representation of a record;
// mapping to the shapes used by the panel happens in internal/model.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Observer is notified once per backend round trip. Status is 0 when the
// request never produced a response.
type Observer func(ctx context.Context, method, resource string, status int, elapsed time.Duration)

type Client struct {
	http.Client
	Addr string

	credentials CredentialProvider
	logger      *zap.Logger
	observer    Observer
	limiter     *rate.Limiter
}

func New(addr string, opts ...Option) *Client {
	c := &Client{
		Addr:        strings.TrimRight(addr, "/"),
		credentials: StaticToken(""),
		logger:      zap.NewNop(),
		limiter:     rate.NewLimiter(rate.Inf, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.Addr + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}

	if err = c.intercept(req); err != nil {
		return err
	}

	if err = c.limiter.Wait(ctx); err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.Do(req)
	if err != nil {
		c.observe(ctx, method, path, 0, started)

		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.observe(ctx, method, path, resp.StatusCode, started)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.inspect(req, newAPIError(resp.StatusCode, raw))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}

func (c *Client) observe(ctx context.Context, method, path string, status int, started time.Time) {
	if c.observer == nil {
		return
	}

	c.observer(ctx, method, resourceOf(path), status, time.Since(started))
}

// resourceOf keeps the first path segment so metrics do not explode on slugs.
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}

	return path
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
