// Package view renders the panel chrome (header, navigation drawer, notices)
// around page templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/admin/internal/richtext"
	"github.com/SergeyParamoshkin/admin/internal/session"
	"github.com/SergeyParamoshkin/admin/internal/theme"
)

// Title is shown in the header of every page.
const Title = "Yota-X Admin Panel"

// LoadFailureDelay is how long a load-failure page stays before it sends the
// user back to the list, in seconds.
const LoadFailureDelay = 2

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type NavItem struct {
	Text   string
	Path   string
	Active bool
}

var navigation = []NavItem{
	{Text: "Dashboard", Path: "/dashboard"},
	{Text: "Articles", Path: "/articles"},
	{Text: "Positions", Path: "/positions"},
	{Text: "Settings", Path: "/settings"},
}

// AccountMenu entries of the header menu.
var AccountMenu = []string{"Profile", "My account", "Logout"}

type Redirect struct {
	URL   string
	After int
}

// Page is everything the layout needs plus the page's own Data.
type Page struct {
	AppTitle    string
	Title       string
	CurrentPath string
	Back        string
	Theme       theme.Mode
	Palette     theme.Palette
	NavOpen     bool
	Nav         []NavItem
	Account     []string
	Flashes     []session.Flash
	Error       string
	Redirect    *Redirect
	Data        interface{}
}

// Confirm is the data of the shared confirmation page.
type Confirm struct {
	Question  string
	Action    string
	CancelURL string
	Hidden    map[string]string
}

type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Store
	logger   *zap.SugaredLogger
}

// Choice feeds the select partial of the forms.
type Choice struct {
	Name    string
	Value   string
	Options []string
}

var funcs = template.FuncMap{
	"join":    strings.Join,
	"add":     func(a, b int) int { return a + b },
	"excerpt": richtext.Excerpt,
	"choice": func(name, value string, options []string) Choice {
		return Choice{Name: name, Value: value, Options: options}
	},
}

func New(sessions *session.Store, logger *zap.SugaredLogger) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	rd := &Renderer{
		pages:    make(map[string]*template.Template, len(files)),
		sessions: sessions,
		logger:   logger,
	}

	for _, file := range files {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err = t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		rd.pages[path.Base(file)] = t
	}

	return rd, nil
}

// NewPage fills the layout fields from the request and the caller's session.
// Pending flash notices are consumed.
func (rd *Renderer) NewPage(r *http.Request, title string, data interface{}) Page {
	sess := rd.sessions.Snapshot(r.Context())

	nav := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = r.URL.Path == item.Path || strings.HasPrefix(r.URL.Path, item.Path+"/")
		nav[i] = item
	}

	return Page{
		AppTitle:    Title,
		Title:       title,
		CurrentPath: r.URL.Path,
		Back:        r.URL.RequestURI(),
		Theme:       sess.Theme,
		Palette:     sess.Theme.Palette(),
		NavOpen:     sess.NavOpen,
		Nav:         nav,
		Account:     AccountMenu,
		Flashes:     rd.sessions.TakeFlashes(r.Context()),
		Data:        data,
	}
}

// HTML renders page with the named page template.
func (rd *Renderer) HTML(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := rd.pages[name]
	if !ok {
		rd.logger.Errorw("unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		rd.logger.Errorw("render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.Errorw(err.Error())
	}
}

// LoadFailed shows message and sends the user to back after LoadFailureDelay.
func (rd *Renderer) LoadFailed(w http.ResponseWriter, r *http.Request, status int, message, back string) {
	page := rd.NewPage(r, "Error", nil)
	page.Error = message
	page.Redirect = &Redirect{URL: back, After: LoadFailureDelay}

	rd.HTML(w, status, "error.html", page)
}

// Placeholder renders the page for navigation targets that have no screen yet.
func (rd *Renderer) Placeholder(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.HTML(w, http.StatusOK, "placeholder.html", rd.NewPage(r, title, nil))
	}
}

func Static() http.FileSystem {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(fsys)
}
