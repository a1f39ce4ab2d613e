package article

import (
	"context"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/admin/client"
)

// memoryAPI is an in-memory backend keyed by slug. It records every call
// and fails the methods named in fail. Methods named in delay answer late.
type memoryAPI struct {
	mu       sync.Mutex
	articles []*client.ServerArticle
	calls    []call
	fail     map[string]error
	delay    map[string]time.Duration
}

type call struct {
	Method string
	Slug   string
	Params client.ArticleListParams
	Create client.CreateArticleRequest
	Update client.UpdateArticleRequest
}

func newMemoryAPI(articles ...client.ServerArticle) *memoryAPI {
	m := &memoryAPI{fail: map[string]error{}, delay: map[string]time.Duration{}}
	for i := range articles {
		a := articles[i]
		m.articles = append(m.articles, &a)
	}

	return m
}

func (m *memoryAPI) record(c call) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, c)

	return m.fail[c.Method]
}

func (m *memoryAPI) wait(ctx context.Context, method string) error {
	m.mu.Lock()
	d := m.delay[method]
	m.mu.Unlock()

	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memoryAPI) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}

	return n
}

func (m *memoryAPI) last(method string) call {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method {
			return m.calls[i]
		}
	}

	return call{}
}

func (m *memoryAPI) find(slug string) (int, *client.ServerArticle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.articles {
		if a.Slug == slug {
			return i, a
		}
	}

	return -1, nil
}

func notFound() error {
	return &client.APIError{StatusCode: 404, Messages: []string{"Article not found"}}
}

func (m *memoryAPI) ListArticles(_ context.Context, params client.ArticleListParams) (*client.ArticlesResponse, error) {
	if err := m.record(call{Method: "ListArticles", Params: params}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	resp := &client.ArticlesResponse{Total: len(m.articles), Page: params.Page}
	start := (params.Page - 1) * params.Limit
	for i := start; i < len(m.articles) && i < start+params.Limit; i++ {
		resp.Articles = append(resp.Articles, *m.articles[i])
	}

	return resp, nil
}

func (m *memoryAPI) GetArticle(_ context.Context, slug string) (*client.ServerArticle, error) {
	if err := m.record(call{Method: "GetArticle", Slug: slug}); err != nil {
		return nil, err
	}

	if _, a := m.find(slug); a != nil {
		out := *a

		return &out, nil
	}

	return nil, notFound()
}

func (m *memoryAPI) CreateArticle(_ context.Context, data client.CreateArticleRequest) (*client.ServerArticle, error) {
	if err := m.record(call{Method: "CreateArticle", Create: data}); err != nil {
		return nil, err
	}

	a := &client.ServerArticle{ID: "id-" + data.Slug, Title: data.Title, Slug: data.Slug, Published: data.Published}

	m.mu.Lock()
	m.articles = append(m.articles, a)
	m.mu.Unlock()

	return a, nil
}

func (m *memoryAPI) UpdateArticle(_ context.Context, slug string, data client.UpdateArticleRequest) (*client.ServerArticle, error) {
	if err := m.record(call{Method: "UpdateArticle", Slug: slug, Update: data}); err != nil {
		return nil, err
	}

	_, a := m.find(slug)
	if a == nil {
		return nil, notFound()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if data.Published != nil {
		a.Published = *data.Published
	}
	if data.Title != nil {
		a.Title = *data.Title
	}

	out := *a

	return &out, nil
}

func (m *memoryAPI) DeleteArticle(_ context.Context, slug string) error {
	if err := m.record(call{Method: "DeleteArticle", Slug: slug}); err != nil {
		return err
	}

	i, a := m.find(slug)
	if a == nil {
		return notFound()
	}

	m.mu.Lock()
	m.articles = append(m.articles[:i], m.articles[i+1:]...)
	m.mu.Unlock()

	return nil
}

func (m *memoryAPI) RelatedArticles(_ context.Context, slug string, _ int) ([]client.ServerArticle, error) {
	if err := m.record(call{Method: "RelatedArticles", Slug: slug}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []client.ServerArticle
	for _, a := range m.articles {
		if a.Slug != slug {
			out = append(out, *a)
		}
	}

	return out, nil
}

func (m *memoryAPI) TagsWithCount(ctx context.Context) ([]client.TagCount, error) {
	if err := m.wait(ctx, "TagsWithCount"); err != nil {
		return nil, err
	}
	if err := m.record(call{Method: "TagsWithCount"}); err != nil {
		return nil, err
	}

	return []client.TagCount{{Tag: "go", Count: 3}}, nil
}

func (m *memoryAPI) PopularTags(context.Context, int) ([]client.TagViews, error) {
	if err := m.record(call{Method: "PopularTags"}); err != nil {
		return nil, err
	}

	return []client.TagViews{{Tag: "chi", Views: 42}}, nil
}
