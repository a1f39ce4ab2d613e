package position

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/logging"
	"github.com/SergeyParamoshkin/admin/internal/model"
)

const DefaultRowsPerPage = 10

var RowsPerPageOptions = []int{5, 10, 25}

// Query is the list state kept in the URL. Page is 0-based.
type Query struct {
	Department  string
	Search      string
	Page        int
	RowsPerPage int
}

func ParseQuery(v url.Values) Query {
	q := Query{
		Department:  v.Get("department"),
		Search:      v.Get("q"),
		RowsPerPage: DefaultRowsPerPage,
	}

	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if rows, err := strconv.Atoi(v.Get("rowsPerPage")); err == nil && allowedRows(rows) {
		q.RowsPerPage = rows
	}

	return q
}

func allowedRows(rows int) bool {
	for _, n := range RowsPerPageOptions {
		if n == rows {
			return true
		}
	}

	return false
}

// Searching reports whether the search box decides the result set.
func (q Query) Searching() bool {
	return strings.TrimSpace(q.Search) != ""
}

func (q Query) URL() string {
	v := url.Values{}
	if q.Department != "" {
		v.Set("department", q.Department)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.RowsPerPage != DefaultRowsPerPage {
		v.Set("rowsPerPage", strconv.Itoa(q.RowsPerPage))
	}

	if len(v) == 0 {
		return ListPath
	}

	return ListPath + "?" + v.Encode()
}

type row struct {
	model.Position
	ViewURL   string
	EditURL   string
	DeleteURL string
}

type listData struct {
	Rows               []row
	Query              Query
	Departments        []string
	RowsPerPageOptions []int
	Total              int
	From               int
	To                 int
	PrevURL            string
	NextURL            string
}

// List fetches the whole result set, either the search hits or the
// department's positions, and pages through it locally.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())

	data := listData{
		Query:              q,
		Departments:        model.Departments,
		RowsPerPageOptions: RowsPerPageOptions,
	}

	var (
		found   []client.ServerPosition
		err     error
		failMsg string
	)
	if q.Searching() {
		found, err = h.api.SearchPositions(r.Context(), strings.TrimSpace(q.Search))
		failMsg = MsgSearchFailed
	} else {
		found, err = h.api.ListPositions(r.Context(), q.Department)
		failMsg = MsgListFailed
	}

	if err != nil {
		logging.FromContext(r.Context()).Errorw("list positions", "department", q.Department, "q", q.Search, "error", err)

		page := h.view.NewPage(r, "Positions", data)
		page.Error = failMsg
		h.view.HTML(w, http.StatusBadGateway, "positions_list.html", page)

		return
	}

	positions := model.PositionsFromServer(found)
	data.Total = len(positions)

	if last := lastPage(data.Total, q.RowsPerPage); q.Page > last {
		q.Page = last
		data.Query = q
	}

	start := q.Page * q.RowsPerPage
	end := start + q.RowsPerPage
	if end > data.Total {
		end = data.Total
	}

	back := url.QueryEscape(q.URL())
	for _, p := range positions[start:end] {
		data.Rows = append(data.Rows, row{
			Position:  p,
			ViewURL:   itemPath(p.ID),
			EditURL:   itemPath(p.ID) + "/edit",
			DeleteURL: itemPath(p.ID) + "/delete?back=" + back,
		})
	}

	if len(data.Rows) > 0 {
		data.From = start + 1
		data.To = end
	}
	if q.Page > 0 {
		prev := q
		prev.Page--
		data.PrevURL = prev.URL()
	}
	if end < data.Total {
		next := q
		next.Page++
		data.NextURL = next.URL()
	}

	h.view.HTML(w, http.StatusOK, "positions_list.html", h.view.NewPage(r, "Positions", data))
}

func lastPage(total, rows int) int {
	if total == 0 {
		return 0
	}

	return (total - 1) / rows
}
