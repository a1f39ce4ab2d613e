// Package richtext cleans and inspects the HTML produced by the article editor.
package richtext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Sanitizer strips markup that must not reach the backend.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(content string) string {
	return strings.TrimSpace(s.policy.Sanitize(content))
}

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style bodies are skipped.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		b    strings.Builder
		skip int
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if hidden(z) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if hidden(z) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func hidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}

	return false
}

// IsBlank reports whether the fragment has no visible text, which is what an
// editor leaves behind after the user clears it (e.g. "<p><br></p>").
func IsBlank(fragment string) bool {
	return PlainText(fragment) == ""
}

// Excerpt is the first n runes of the visible text, with an ellipsis when cut.
func Excerpt(fragment string, n int) string {
	text := []rune(PlainText(fragment))
	if len(text) <= n {
		return string(text)
	}

	return strings.TrimSpace(string(text[:n])) + "…"
}
