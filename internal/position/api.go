// Package position serves the job position screens: the filterable list,
// details, the create and edit form with its requirement list, and deletion.
package position

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/session"
	"github.com/SergeyParamoshkin/admin/internal/validation"
	"github.com/SergeyParamoshkin/admin/internal/view"
)

const ListPath = "/positions"

const (
	MsgListFailed   = "Failed to load positions"
	MsgSearchFailed = "Failed to search positions"
	MsgDeleteFailed = "Failed to delete position"
	MsgSaveFailed   = "Failed to save position"
	MsgLoadFailed   = "Failed to load position"
	MsgSaved        = "Position saved"
	MsgDeleted      = "Position deleted"
)

// Form actions.
const (
	ActionSave              = "save"
	ActionAddRequirement    = "add-requirement"
	ActionRemoveRequirement = "remove-requirement"
)

type API interface {
	ListPositions(ctx context.Context, department string) ([]client.ServerPosition, error)
	SearchPositions(ctx context.Context, query string) ([]client.ServerPosition, error)
	GetPosition(ctx context.Context, id string) (*client.ServerPosition, error)
	CreatePosition(ctx context.Context, data client.CreatePositionRequest) (*client.ServerPosition, error)
	UpdatePosition(ctx context.Context, id string, data client.UpdatePositionRequest) (*client.ServerPosition, error)
	DeletePosition(ctx context.Context, id string) error
}

type Handler struct {
	api       API
	view      *view.Renderer
	sessions  *session.Store
	validator *validation.Validator
}

func New(api API, rd *view.Renderer, sessions *session.Store, v *validation.Validator) *Handler {
	return &Handler{api: api, view: rd, sessions: sessions, validator: v}
}

// Routes mounts the position screens, relative to /positions.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.New)
	r.Post("/new", h.Submit)

	r.Route("/{id}", func(r chi.Router) {
		r.With(h.PositionCtx).Get("/", h.Details)
		r.With(h.PositionCtx).Get("/edit", h.Edit)
		r.Post("/edit", h.Submit)
		r.With(h.PositionCtx).Get("/delete", h.ConfirmDelete)
		r.Post("/delete", h.Delete)
	})
}

type detailsData struct {
	Position  model.Position
	EditURL   string
	DeleteURL string
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	position, _ := FromContext(r.Context())

	h.view.HTML(w, http.StatusOK, "position_details.html", h.view.NewPage(r, position.Title, detailsData{
		Position:  *position,
		EditURL:   itemPath(position.ID) + "/edit",
		DeleteURL: itemPath(position.ID) + "/delete",
	}))
}

type formData struct {
	Edit             bool
	Action           string
	Form             Form
	NewRequirement   string
	Errors           validation.Errors
	Departments      []string
	EmploymentTypes  []string
	Locations        []string
	ExperienceLevels []string
}

func (h *Handler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", formData{
		Action: ListPath + "/new",
		Form:   Form{Requirements: model.Requirements{}},
	})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	position, _ := FromContext(r.Context())

	h.renderForm(w, r, http.StatusOK, "", formData{
		Edit:   true,
		Action: itemPath(position.ID) + "/edit",
		Form:   FormFromPosition(*position),
	})
}

// Submit handles every button of the position form. Requirement edits
// re-render the form with the list changed; save validates and sends it.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	data := formData{
		Edit:           id != "",
		Action:         ListPath + "/new",
		Form:           FormFromValues(r.PostForm),
		NewRequirement: r.PostForm.Get("newRequirement"),
	}
	if data.Edit {
		data.Action = itemPath(id) + "/edit"
	}

	action := r.PostForm.Get("action")
	switch {
	case action == ActionAddRequirement:
		if data.Form.Requirements.Add(data.NewRequirement) {
			data.NewRequirement = ""
		}
		h.renderForm(w, r, http.StatusOK, "", data)

		return
	case strings.HasPrefix(action, ActionRemoveRequirement):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, ActionRemoveRequirement+":")); err == nil {
			data.Form.Requirements.Remove(i)
		}
		h.renderForm(w, r, http.StatusOK, "", data)

		return
	}

	if data.Errors = h.validator.Validate(data.Form); data.Errors != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "", data)

		return
	}

	var err error
	if data.Edit {
		_, err = h.api.UpdatePosition(r.Context(), id, data.Form.UpdateRequest())
	} else {
		_, err = h.api.CreatePosition(r.Context(), data.Form.CreateRequest())
	}
	if err != nil {
		logging.FromContext(r.Context()).Errorw("save position", "id", id, "error", err)
		h.renderForm(w, r, http.StatusBadGateway, client.ErrorMessage(err, MsgSaveFailed), data)

		return
	}
	h.sessions.AddFlash(r.Context(), session.FlashSuccess, MsgSaved)

	http.Redirect(w, r, ListPath, http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, data formData) {
	data.Departments = model.Departments
	data.EmploymentTypes = model.EmploymentTypes
	data.Locations = model.Locations
	data.ExperienceLevels = model.ExperienceLevels

	title := "Create Position"
	if data.Edit {
		title = "Edit Position"
	}

	page := h.view.NewPage(r, title, data)
	page.Error = message
	h.view.HTML(w, status, "position_form.html", page)
}

func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	position, _ := FromContext(r.Context())
	back := view.SafeBack(r.URL.Query().Get("back"), ListPath)

	h.view.HTML(w, http.StatusOK, "confirm.html", h.view.NewPage(r, "Delete position", view.Confirm{
		Question:  ConfirmQuestion(position.Title),
		Action:    itemPath(position.ID) + "/delete",
		CancelURL: back,
		Hidden:    map[string]string{"back": back},
	}))
}

// Delete removes the position only when the confirmation form was accepted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := view.SafeBack(r.PostFormValue("back"), ListPath)

	if r.PostFormValue("confirm") == "yes" {
		if err := h.api.DeletePosition(r.Context(), id); err != nil {
			logging.FromContext(r.Context()).Errorw("delete position", "id", id, "error", err)
			h.sessions.AddFlash(r.Context(), session.FlashError, MsgDeleteFailed)
		} else {
			h.sessions.AddFlash(r.Context(), session.FlashSuccess, MsgDeleted)
		}
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

func ConfirmQuestion(title string) string {
	return fmt.Sprintf("Are you sure you want to delete the position \"%s\"?", title)
}

func itemPath(id string) string {
	return ListPath + "/" + url.PathEscape(id)
}
