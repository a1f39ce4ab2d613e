package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/admin/client"
)

type request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

type backend struct {
	srv       *httptest.Server
	tokenFile string

	mu       sync.Mutex
	requests []request
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADMIN_AUTH_TOKEN", "")

	b := &backend{tokenFile: filepath.Join(t.TempDir(), "token.yaml")}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)

	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(raw),
		Auth:   r.Header.Get("Authorization"),
	})
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	route := r.Method + " " + r.URL.Path
	switch route {
	case "GET /articles":
		_, _ = w.Write([]byte(`{"articles":[
			{"_id":"1","title":"Hello World","slug":"hello-world","author":"Ann","published":true,"tags":["go","chi"]},
			{"_id":"2","title":"Second","slug":"second","author":"Bob","published":false}
		],"total":2,"page":1,"totalPages":1}`))
	case "GET /articles/hello-world":
		_, _ = w.Write([]byte(`{"_id":"1","title":"Hello World","slug":"hello-world","author":"Ann","published":true,"seo":{"metaTitle":"Hello"}}`))
	case "PATCH /articles/hello-world":
		_, _ = w.Write([]byte(`{"_id":"1","title":"Hello World","slug":"hello-world","published":false}`))
	case "POST /articles":
		var in client.CreateArticleRequest
		_ = json.Unmarshal(raw, &in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(client.ServerArticle{Slug: in.Slug, Title: in.Title})
	case "GET /positions", "GET /positions/search":
		_, _ = w.Write([]byte(`[{"_id":"p1","title":"Go Developer","department":"Development","type":"Full-time","location":"Remote","experience":"Senior (6-8 years)"}]`))
	case "GET /positions/p1":
		_, _ = w.Write([]byte(`{"_id":"p1","title":"Go Developer","department":"Development","requirements":["Go","SQL"]}`))
	case "POST /positions":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p9","title":"Designer"}`))
	case "DELETE /articles/hello-world", "DELETE /positions/p1":
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

func (b *backend) find(method, path string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []request
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}

	return out
}

func (b *backend) run(stdin string, args ...string) (string, string, error) {
	cmd := NewRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--api-url", b.srv.URL, "--token-file", b.tokenFile, "--no-color"))

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestArticlesList(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "articles", "list", "--page", "2", "--limit", "5", "--published", "true", "--tag", "go")
	require.NoError(t, err)

	assert.Contains(t, out, "Hello World")
	assert.Contains(t, out, "Published")
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "go, chi")
	assert.Contains(t, out, "2 articles")

	reqs := b.find(http.MethodGet, "/articles")
	require.Len(t, reqs, 1)
	assert.Equal(t, "limit=5&page=2&published=true&tag=go", reqs[0].Query)
}

func TestArticlesListRejectsBadPublished(t *testing.T) {
	b := newBackend(t)

	_, _, err := b.run("", "articles", "list", "--published", "maybe")
	assert.Error(t, err)
	assert.Empty(t, b.find(http.MethodGet, "/articles"))
}

func TestArticleGet(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "articles", "get", "hello-world")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Hello World")
	assert.Contains(t, out, "Meta title: Hello")
}

func TestArticleToggle(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "articles", "toggle", "hello-world")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-world is now Draft")

	patches := b.find(http.MethodPatch, "/articles/hello-world")
	require.Len(t, patches, 1)
	assert.JSONEq(t, `{"published":false}`, patches[0].Body)
}

func TestArticleDeleteConfirmation(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("n\n", "articles", "delete", "hello-world")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this article? (hello-world) [y/N]")
	assert.Contains(t, out, "cancelled")
	assert.Empty(t, b.find(http.MethodDelete, "/articles/hello-world"))

	_, _, err = b.run("", "articles", "delete", "hello-world")
	require.NoError(t, err)
	assert.Empty(t, b.find(http.MethodDelete, "/articles/hello-world"), "end of input is a no")

	_, _, err = b.run("yes\n", "articles", "delete", "hello-world")
	require.NoError(t, err)
	assert.Len(t, b.find(http.MethodDelete, "/articles/hello-world"), 1)

	_, _, err = b.run("", "articles", "delete", "hello-world", "--yes")
	require.NoError(t, err)
	assert.Len(t, b.find(http.MethodDelete, "/articles/hello-world"), 2)
}

func TestArticleCreateFromFile(t *testing.T) {
	b := newBackend(t)

	path := writeFile(t, "article.yaml", `
title: "Hello, World!  2024"
description: First post
content: "<p>Body</p><script>alert(1)</script>"
author: Ann
tags: ["go, chi", go]
seo:
  metaTitle: Hello
  metaDescription: First post
  metaKeywords: [go]
`)

	out, _, err := b.run("", "articles", "create", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created hello-world-2024")

	posts := b.find(http.MethodPost, "/articles")
	require.Len(t, posts, 1)

	var sent client.CreateArticleRequest
	require.NoError(t, json.Unmarshal([]byte(posts[0].Body), &sent))
	assert.Equal(t, "hello-world-2024", sent.Slug)
	assert.Equal(t, "<p>Body</p>", sent.Content)
	assert.Equal(t, []string{"go", "chi"}, sent.Tags)
}

func TestArticleCreateValidates(t *testing.T) {
	b := newBackend(t)

	path := writeFile(t, "article.yaml", "description: no title\n")

	_, stderr, err := b.run("", "articles", "create", "-f", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "title: Title is required")
	assert.Contains(t, stderr, "seo.metaKeywords: Meta keywords are required")
	assert.Empty(t, b.find(http.MethodPost, "/articles"))
}

func TestArticleCreateRejectsUnknownField(t *testing.T) {
	b := newBackend(t)

	path := writeFile(t, "article.yaml", "titel: typo\n")

	_, _, err := b.run("", "articles", "create", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")

	_, _, err = b.run("", "articles", "create")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestPositionsListDepartmentOrSearch(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "positions", "list", "--department", "Development")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Developer")
	assert.Contains(t, out, "1 positions")

	_, _, err = b.run("", "positions", "list", "--department", "Development", "--search", "  go ")
	require.NoError(t, err)

	lists := b.find(http.MethodGet, "/positions")
	require.Len(t, lists, 1)
	assert.Equal(t, "department=Development", lists[0].Query)

	searches := b.find(http.MethodGet, "/positions/search")
	require.Len(t, searches, 1)
	assert.Equal(t, "q=go", searches[0].Query)
}

func TestPositionGet(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "positions", "get", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Go Developer")
	assert.Contains(t, out, "  - SQL")

	_, _, err = b.run("", "positions", "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load position")
}

func TestPositionDeleteConfirmation(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("no\n", "positions", "delete", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, `Are you sure you want to delete the position "Go Developer"?`)
	assert.Empty(t, b.find(http.MethodDelete, "/positions/p1"))

	_, _, err = b.run("y\n", "positions", "delete", "p1")
	require.NoError(t, err)
	assert.Len(t, b.find(http.MethodDelete, "/positions/p1"), 1)
}

func TestPositionCreateFromFile(t *testing.T) {
	b := newBackend(t)

	path := writeFile(t, "position.yaml", `
title: Designer
department: Design
type: Full-time
location: Remote
experience: Junior (2-4 years)
description: Draw things
requirements: [Figma, " Figma ", "", Sketch]
`)

	out, _, err := b.run("", "positions", "create", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created Designer (p9)")

	posts := b.find(http.MethodPost, "/positions")
	require.Len(t, posts, 1)

	var sent client.CreatePositionRequest
	require.NoError(t, json.Unmarshal([]byte(posts[0].Body), &sent))
	assert.Equal(t, []string{"Figma", "Sketch"}, sent.Requirements)
}

func TestPositionCreateValidates(t *testing.T) {
	b := newBackend(t)

	path := writeFile(t, "position.yaml", `
title: Designer
department: HR
type: Full-time
location: Remote
experience: Junior (2-4 years)
description: Draw things
`)

	_, stderr, err := b.run("", "positions", "create", "-f", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "Department must be one of the listed departments")
	assert.Contains(t, stderr, "At least one requirement is required")
	assert.Empty(t, b.find(http.MethodPost, "/positions"))
}

func TestTokenFileFeedsRequests(t *testing.T) {
	b := newBackend(t)

	out, _, err := b.run("", "token", "set", "secret-token")
	require.NoError(t, err)
	assert.Contains(t, out, "token saved")

	out, _, err = b.run("", "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "secr********")

	_, _, err = b.run("", "articles", "list")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", b.find(http.MethodGet, "/articles")[0].Auth)

	_, _, err = b.run("", "articles", "list", "--token", "flag-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer flag-token", b.find(http.MethodGet, "/articles")[1].Auth)
}

func TestConfigFile(t *testing.T) {
	b := newBackend(t)

	cfg := writeFile(t, "adminctl.yaml", "api-url: "+b.srv.URL+"\n")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"positions", "list", "--config", cfg, "--no-color"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Go Developer")
}

func TestMissingBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADMINCTL_API_URL", "")

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"articles", "list"})

	assert.ErrorIs(t, cmd.Execute(), ErrNoBackend)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "***", mask("abc"))
	assert.Equal(t, "abcd**", mask("abcdef"))
}
