package article

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
)

const (
	DefaultPageSize = 10
	tagPreview      = 3
)

var PageSizes = []int{10, 25, 50}

// Query is the list state kept in the URL. Page is 0-based.
type Query struct {
	Page       int
	PageSize   int
	Published  *bool
	Tag        string
	Author     string
	SearchTerm string
}

func ParseQuery(v url.Values) Query {
	q := Query{
		PageSize:   DefaultPageSize,
		Tag:        strings.TrimSpace(v.Get("tag")),
		Author:     strings.TrimSpace(v.Get("author")),
		SearchTerm: strings.TrimSpace(v.Get("searchTerm")),
	}

	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if size, err := strconv.Atoi(v.Get("pageSize")); err == nil && allowedSize(size) {
		q.PageSize = size
	}
	if published, err := strconv.ParseBool(v.Get("published")); err == nil {
		q.Published = &published
	}

	return q
}

func allowedSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}

	return false
}

// Status is the published filter as it appears in the query string.
func (q Query) Status() string {
	if q.Published == nil {
		return ""
	}

	return strconv.FormatBool(*q.Published)
}

// Params converts the 0-based page to the 1-based one the backend expects.
func (q Query) Params() client.ArticleListParams {
	return client.ArticleListParams{
		Page:       q.Page + 1,
		Limit:      q.PageSize,
		Published:  q.Published,
		Tag:        q.Tag,
		Author:     q.Author,
		SearchTerm: q.SearchTerm,
	}
}

func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != DefaultPageSize {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Published != nil {
		v.Set("published", strconv.FormatBool(*q.Published))
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Author != "" {
		v.Set("author", q.Author)
	}
	if q.SearchTerm != "" {
		v.Set("searchTerm", q.SearchTerm)
	}

	return v
}

// URL is the list page for q.
func (q Query) URL() string {
	if v := q.Values(); len(v) > 0 {
		return ListPath + "?" + v.Encode()
	}

	return ListPath
}

type row struct {
	model.Article
	ShownTags  []string
	MoreTags   int
	EditURL    string
	PublishURL string
	DeleteURL  string
}

type listData struct {
	Rows      []row
	Compact   bool
	Query     Query
	PageSizes []int
	Total     int
	From      int
	To        int
	PrevURL   string
	NextURL   string
	Back      string
}

// List renders one page of articles. Only that page is fetched; paging is
// done by the backend.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())

	data := listData{
		Compact:   Narrow(r),
		Query:     q,
		PageSizes: PageSizes,
		Back:      q.URL(),
	}

	resp, err := h.api.ListArticles(r.Context(), q.Params())
	if err != nil {
		logging.FromContext(r.Context()).Errorw("list articles", "page", q.Page, "pageSize", q.PageSize, "error", err)

		page := h.view.NewPage(r, "Articles", data)
		page.Error = MsgListFailed
		h.view.HTML(w, http.StatusBadGateway, "articles_list.html", page)

		return
	}

	back := url.QueryEscape(data.Back)
	for _, a := range model.ArticlesFromServer(resp.Articles) {
		shown, more := a.TagPreview(tagPreview)
		data.Rows = append(data.Rows, row{
			Article:    a,
			ShownTags:  shown,
			MoreTags:   more,
			EditURL:    editPath(a.Slug),
			PublishURL: publishPath(a.Slug),
			DeleteURL:  deletePath(a.Slug) + "?back=" + back,
		})
	}

	data.Total = resp.Total
	if len(data.Rows) > 0 {
		data.From = q.Page*q.PageSize + 1
		data.To = q.Page*q.PageSize + len(data.Rows)
	}
	if q.Page > 0 {
		prev := q
		prev.Page--
		data.PrevURL = prev.URL()
	}
	if (q.Page+1)*q.PageSize < resp.Total {
		next := q
		next.Page++
		data.NextURL = next.URL()
	}

	h.view.HTML(w, http.StatusOK, "articles_list.html", h.view.NewPage(r, "Articles", data))
}

// Narrow reports a phone-sized viewport from the client hint, or from the
// user agent when the hint is absent.
func Narrow(r *http.Request) bool {
	if hint := r.Header.Get("Sec-CH-UA-Mobile"); hint != "" {
		return hint == "?1"
	}

	return strings.Contains(r.UserAgent(), "Mobile")
}
