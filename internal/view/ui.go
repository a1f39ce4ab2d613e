package view

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// DefaultBack is where UI actions return when the form names no page.
const DefaultBack = "/articles"

// UIRoutes mounts the session toggles under /ui.
func (rd *Renderer) UIRoutes(r chi.Router) {
	r.Post("/theme", rd.ToggleTheme)
	r.Post("/drawer", rd.ToggleNav)
}

func (rd *Renderer) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	rd.sessions.ToggleTheme(r.Context())
	http.Redirect(w, r, SafeBack(r.PostFormValue("back"), DefaultBack), http.StatusSeeOther)
}

func (rd *Renderer) ToggleNav(w http.ResponseWriter, r *http.Request) {
	rd.sessions.ToggleNav(r.Context())
	http.Redirect(w, r, SafeBack(r.PostFormValue("back"), DefaultBack), http.StatusSeeOther)
}

// SafeBack accepts only local absolute paths, so a posted form can never
// send the browser to another host.
func SafeBack(back, fallback string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return fallback
	}

	return back
}
