package article

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
)

type ctxKey struct{}

// ArticleCtx middleware is used to load an Article from the slug in the URL.
// In case the Article could not be loaded, we stop here with the load-failure
// page, which sends the user back to the list.
func (h *Handler) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		found, err := h.api.GetArticle(r.Context(), slug)
		if err != nil {
			logging.FromContext(r.Context()).Errorw("load article", "slug", slug, "error", err)

			status := http.StatusBadGateway
			if client.IsNotFound(err) {
				status = http.StatusNotFound
			}
			h.view.LoadFailed(w, r, status, MsgLoadFailed, ListPath)

			return
		}

		article := model.ArticleFromServer(*found)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, &article)))
	})
}

// FromContext returns the article ArticleCtx loaded.
func FromContext(ctx context.Context) (*model.Article, bool) {
	article, ok := ctx.Value(ctxKey{}).(*model.Article)

	return article, ok
}
