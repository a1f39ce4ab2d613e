package client

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// intercept prepares every outgoing request: JSON headers and, when the
// credential provider has one, the bearer token.
func (c *Client) intercept(req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.credentials.Token(req.Context())
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return nil
}

// inspect logs the statuses the panel cares about and hands the error back
// unchanged. Nothing is swallowed here.
func (c *Client) inspect(req *http.Request, apiErr *APIError) error {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		c.logger.Warn("unauthorized access",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
	case http.StatusBadRequest:
		message := apiErr.Message()
		if message == "" {
			message = "Validation error"
		}
		c.logger.Warn("validation error",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("message", message),
		)
	}

	return apiErr
}
