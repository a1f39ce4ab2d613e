// Package article serves the article screens of the panel: the paginated
// list with publish toggles, the create and edit form, and deletion.
package article

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/errresponse"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/richtext"
	"github.com/SergeyParamoshkin/admin/internal/session"
	"github.com/SergeyParamoshkin/admin/internal/slug"
	"github.com/SergeyParamoshkin/admin/internal/validation"
	"github.com/SergeyParamoshkin/admin/internal/view"
)

const ListPath = "/articles"

const (
	MsgListFailed   = "Failed to load articles. Please try again later."
	MsgToggleFailed = "Failed to update article status."
	MsgDeleteFailed = "Failed to delete article."
	MsgSaveFailed   = "Failed to save article"
	MsgLoadFailed   = "Failed to load article"
	MsgConfirm      = "Are you sure you want to delete this article?"
	MsgCreated      = "Article created"
	MsgUpdated      = "Article updated"
	MsgDeleted      = "Article deleted"
)

const (
	suggestionLimit = 10
	relatedLimit    = 5
)

// API is the part of the backend client the article screens use.
type API interface {
	ListArticles(ctx context.Context, params client.ArticleListParams) (*client.ArticlesResponse, error)
	GetArticle(ctx context.Context, slug string) (*client.ServerArticle, error)
	CreateArticle(ctx context.Context, data client.CreateArticleRequest) (*client.ServerArticle, error)
	UpdateArticle(ctx context.Context, slug string, data client.UpdateArticleRequest) (*client.ServerArticle, error)
	DeleteArticle(ctx context.Context, slug string) error
	RelatedArticles(ctx context.Context, slug string, limit int) ([]client.ServerArticle, error)
	TagsWithCount(ctx context.Context) ([]client.TagCount, error)
	PopularTags(ctx context.Context, limit int) ([]client.TagViews, error)
}

type Handler struct {
	api       API
	view      *view.Renderer
	sessions  *session.Store
	validator *validation.Validator
	sanitizer *richtext.Sanitizer
}

func New(api API, rd *view.Renderer, sessions *session.Store, v *validation.Validator, s *richtext.Sanitizer) *Handler {
	return &Handler{api: api, view: rd, sessions: sessions, validator: v, sanitizer: s}
}

// Routes mounts the article screens, relative to /articles.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/create", h.New)
	r.Post("/create", h.Create)
	r.With(h.ArticleCtx).Get("/edit/{slug}", h.Edit)
	r.Post("/edit/{slug}", h.Update)

	r.Route("/{slug}", func(r chi.Router) {
		r.Post("/publish", h.TogglePublish)
		r.Get("/delete", h.ConfirmDelete)
		r.Post("/delete", h.Delete)
	})
}

type formData struct {
	Edit    bool
	Action  string
	Form    Form
	Errors  validation.Errors
	Tags    []client.TagCount
	Popular []client.TagViews
	Related []model.Article
	Preview string
}

func (h *Handler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", formData{Action: ListPath + "/create"})
}

// Create persists the posted Article and sends the user back to the list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	form := FormFromValues(r.PostForm)
	form.DeriveSlug()

	data := formData{Action: ListPath + "/create", Form: form}
	if data.Errors = h.validator.Validate(form); data.Errors != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "", data)

		return
	}

	if _, err := h.api.CreateArticle(r.Context(), form.CreateRequest(h.sanitizer)); err != nil {
		logging.FromContext(r.Context()).Errorw("create article", "slug", form.Slug, "error", err)
		h.renderForm(w, r, http.StatusBadGateway, client.ErrorMessage(err, MsgSaveFailed), data)

		return
	}
	h.sessions.AddFlash(r.Context(), session.FlashSuccess, MsgCreated)

	http.Redirect(w, r, ListPath, http.StatusSeeOther)
}

// Edit shows the form filled with the Article ArticleCtx loaded.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	article, _ := FromContext(r.Context())

	h.renderForm(w, r, http.StatusOK, "", formData{
		Edit:   true,
		Action: editPath(article.Slug),
		Form:   FormFromArticle(*article),
	})
}

// Update sends the edited fields to the backend under the slug the article
// was opened with, which may differ from the slug in the form.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	current := chi.URLParam(r, "slug")

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	form := FormFromValues(r.PostForm)

	data := formData{Edit: true, Action: editPath(current), Form: form}
	if data.Errors = h.validator.Validate(form); data.Errors != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "", data)

		return
	}

	if _, err := h.api.UpdateArticle(r.Context(), current, form.UpdateRequest(h.sanitizer)); err != nil {
		logging.FromContext(r.Context()).Errorw("update article", "slug", current, "error", err)
		h.renderForm(w, r, http.StatusBadGateway, client.ErrorMessage(err, MsgSaveFailed), data)

		return
	}
	h.sessions.AddFlash(r.Context(), session.FlashSuccess, MsgUpdated)

	http.Redirect(w, r, ListPath, http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, data formData) {
	current := ""
	if data.Edit {
		current = chi.URLParam(r, "slug")
	}
	data.Tags, data.Popular, data.Related = h.sidebar(r.Context(), current)
	data.Preview = richtext.Excerpt(data.Form.Content, 200)

	title := "Create New Article"
	if data.Edit {
		title = "Edit Article"
	}

	page := h.view.NewPage(r, title, data)
	page.Error = message
	h.view.HTML(w, status, "article_form.html", page)
}

// sidebar loads tag suggestions and, for a stored article, its related
// articles. Each panel is loaded on its own; a failed call leaves only that
// panel empty.
func (h *Handler) sidebar(ctx context.Context, current string) ([]client.TagCount, []client.TagViews, []model.Article) {
	var (
		tags    []client.TagCount
		popular []client.TagViews
		related []client.ServerArticle
	)

	log := logging.FromContext(ctx)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		if tags, err = h.api.TagsWithCount(ctx); err != nil {
			log.Warnw("load tags in use", "error", err)
		}

		return nil
	})
	g.Go(func() error {
		var err error
		if popular, err = h.api.PopularTags(ctx, suggestionLimit); err != nil {
			log.Warnw("load popular tags", "error", err)
		}

		return nil
	})
	if current != "" {
		g.Go(func() error {
			var err error
			if related, err = h.api.RelatedArticles(ctx, current, relatedLimit); err != nil {
				log.Warnw("load related articles", "slug", current, "error", err)
			}

			return nil
		})
	}
	_ = g.Wait()

	return tags, popular, model.ArticlesFromServer(related)
}

// TogglePublish flips the published flag of one article. The form carries
// the state the user saw, so the request sends its negation.
func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	back := view.SafeBack(r.PostFormValue("back"), ListPath)
	next := !checked(r.PostFormValue("published"))

	if _, err := h.api.UpdateArticle(r.Context(), slug, client.UpdateArticleRequest{Published: &next}); err != nil {
		logging.FromContext(r.Context()).Errorw("toggle article status", "slug", slug, "error", err)
		h.sessions.AddFlash(r.Context(), session.FlashError, MsgToggleFailed)
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	back := view.SafeBack(r.URL.Query().Get("back"), ListPath)

	h.view.HTML(w, http.StatusOK, "confirm.html", h.view.NewPage(r, "Delete article", view.Confirm{
		Question:  MsgConfirm,
		Action:    deletePath(slug),
		CancelURL: back,
		Hidden:    map[string]string{"back": back},
	}))
}

// Delete removes the article only when the confirmation form was accepted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	back := view.SafeBack(r.PostFormValue("back"), ListPath)

	if r.PostFormValue("confirm") == "yes" {
		if err := h.api.DeleteArticle(r.Context(), slug); err != nil {
			logging.FromContext(r.Context()).Errorw("delete article", "slug", slug, "error", err)
			h.sessions.AddFlash(r.Context(), session.FlashError, MsgDeleteFailed)
		} else {
			h.sessions.AddFlash(r.Context(), session.FlashSuccess, MsgDeleted)
		}
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

type SlugResponse struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (rd *SlugResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// SlugPreview answers GET /api/slug?title= with the slug the title derives.
func SlugPreview(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		renderError(w, r, errresponse.ErrInvalidRequest(errors.New("title is required")))

		return
	}

	if err := render.Render(w, r, &SlugResponse{Title: title, Slug: slug.Make(title)}); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

func renderError(w http.ResponseWriter, r *http.Request, rr render.Renderer) {
	if err := render.Render(w, r, rr); err != nil {
		logging.FromContext(r.Context()).Errorw(err.Error())
	}
}

func editPath(slug string) string {
	return ListPath + "/edit/" + url.PathEscape(slug)
}

func publishPath(slug string) string {
	return ListPath + "/" + url.PathEscape(slug) + "/publish"
}

func deletePath(slug string) string {
	return ListPath + "/" + url.PathEscape(slug) + "/delete"
}
