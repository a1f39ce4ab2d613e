// Package theme holds the light and dark palettes of the panel and picks the
// initial one from the browser's color-scheme preference.
package theme

import (
	"net/http"
	"strings"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// PreferenceHeader is the client hint carrying prefers-color-scheme.
const PreferenceHeader = "Sec-CH-Prefers-Color-Scheme"

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}

	return Dark
}

func (m Mode) Palette() Palette {
	if m == Dark {
		return darkPalette
	}

	return lightPalette
}

type Palette struct {
	Primary    string
	Background string
	Paper      string
	Text       string
	TextMuted  string
	Border     string
	Error      string
	Success    string
}

var (
	lightPalette = Palette{
		Primary:    "#1976d2",
		Background: "#f5f5f5",
		Paper:      "#ffffff",
		Text:       "#1a1a1a",
		TextMuted:  "#5f6368",
		Border:     "#e0e0e0",
		Error:      "#d32f2f",
		Success:    "#2e7d32",
	}
	darkPalette = Palette{
		Primary:    "#90caf9",
		Background: "#121212",
		Paper:      "#1e1e1e",
		Text:       "#f5f5f5",
		TextMuted:  "#a0a0a0",
		Border:     "#333333",
		Error:      "#f44336",
		Success:    "#66bb6a",
	}
)

// Preferred reads the OS color-scheme preference the browser reported.
// Browsers that do not send the hint get the light palette.
func Preferred(r *http.Request) Mode {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(PreferenceHeader)), `"`)
	if strings.EqualFold(v, string(Dark)) {
		return Dark
	}

	return Light
}

// Hints asks the browser to send the color-scheme and mobile client hints.
func Hints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Accept-CH", PreferenceHeader+", Sec-CH-UA-Mobile")
		h.Set("Critical-CH", PreferenceHeader)
		h.Add("Vary", PreferenceHeader)
		next.ServeHTTP(w, r)
	})
}
