package client

import (
	"context"
	"net/http"
	"net/url"
)

// ServerPosition is a job position exactly as the backend returns it.
type ServerPosition struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Experience   string   `json:"experience"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Version      int      `json:"__v"`
}

type CreatePositionRequest struct {
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Experience   string   `json:"experience"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// UpdatePositionRequest is a partial update: nil fields are not sent.
type UpdatePositionRequest struct {
	Title        *string   `json:"title,omitempty"`
	Department   *string   `json:"department,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Experience   *string   `json:"experience,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Requirements *[]string `json:"requirements,omitempty"`
}

// ListPositions fetches every position, narrowed to one department when
// department is not empty.
func (c *Client) ListPositions(ctx context.Context, department string) ([]ServerPosition, error) {
	var q url.Values
	if department != "" {
		q = url.Values{"department": []string{department}}
	}

	var positions []ServerPosition
	if err := c.do(ctx, http.MethodGet, "/positions", q, nil, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (c *Client) GetPosition(ctx context.Context, id string) (*ServerPosition, error) {
	position := &ServerPosition{}
	if err := c.do(ctx, http.MethodGet, "/positions/"+escape(id), nil, nil, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (c *Client) CreatePosition(ctx context.Context, data CreatePositionRequest) (*ServerPosition, error) {
	position := &ServerPosition{}
	if err := c.do(ctx, http.MethodPost, "/positions", nil, data, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (c *Client) UpdatePosition(ctx context.Context, id string, data UpdatePositionRequest) (*ServerPosition, error) {
	position := &ServerPosition{}
	if err := c.do(ctx, http.MethodPatch, "/positions/"+escape(id), nil, data, position); err != nil {
		return nil, err
	}

	return position, nil
}

func (c *Client) DeletePosition(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/positions/"+escape(id), nil, nil, nil)
}

func (c *Client) SearchPositions(ctx context.Context, query string) ([]ServerPosition, error) {
	var positions []ServerPosition
	q := url.Values{"q": []string{query}}
	if err := c.do(ctx, http.MethodGet, "/positions/search", q, nil, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}
