package errresponse

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderers(t *testing.T) {
	tests := []struct {
		name   string
		r      render.Renderer
		status int
		text   string
	}{
		{"invalid", ErrInvalidRequest(errors.New("title is missing")), http.StatusBadRequest, "Invalid request."},
		{"render", ErrRender(errors.New("boom")), http.StatusUnprocessableEntity, "Error rendering response."},
		{"not found", ErrNotFound, http.StatusNotFound, "Resource not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/slug", nil)

			require.NoError(t, render.Render(w, r, tt.r))
			assert.Equal(t, tt.status, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.text, body["status"])
		})
	}
}
