package position

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
)

type ctxKey struct{}

// PositionCtx loads the Position named by the {id} URL parameter.
func (h *Handler) PositionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		found, err := h.api.GetPosition(r.Context(), id)
		if err != nil {
			logging.FromContext(r.Context()).Errorw("load position", "id", id, "error", err)

			status := http.StatusBadGateway
			if client.IsNotFound(err) {
				status = http.StatusNotFound
			}
			h.view.LoadFailed(w, r, status, MsgLoadFailed, ListPath)

			return
		}

		position := model.PositionFromServer(*found)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, &position)))
	})
}

func FromContext(ctx context.Context) (*model.Position, bool) {
	position, ok := ctx.Value(ctxKey{}).(*model.Position)

	return position, ok
}
