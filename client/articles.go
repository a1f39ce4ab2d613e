package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ServerSEO is the SEO block as stored by the backend.
type ServerSEO struct {
	ID              string   `json:"_id,omitempty"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords"`
}

// ServerArticle is an article exactly as the backend returns it.
type ServerArticle struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     string         `json:"content"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Author      string         `json:"author"`
	Published   bool           `json:"published"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	SEO         ServerSEO      `json:"seo"`
	RelatedTags map[string]int `json:"relatedTags,omitempty"`
	TagViews    map[string]int `json:"tagViews,omitempty"`
	Version     int            `json:"__v"`
}

type ArticlesResponse struct {
	Articles   []ServerArticle `json:"articles"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// SEOInput is the SEO block sent on create and update.
type SEOInput struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
	Published   bool     `json:"published"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	SEO         SEOInput `json:"seo"`
}

// UpdateArticleRequest is a partial update: nil fields are not sent. A
// non-nil empty Tags clears the tags.
type UpdateArticleRequest struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Author      *string   `json:"author,omitempty"`
	Published   *bool     `json:"published,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	SEO         *SEOInput `json:"seo,omitempty"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type TagViews struct {
	Tag   string `json:"tag"`
	Views int    `json:"views"`
}

// ArticleListParams are the query parameters of GET /articles. Page is
// 1-based as the backend expects it; zero values are left out.
type ArticleListParams struct {
	Page       int
	Limit      int
	Published  *bool
	Tag        string
	Author     string
	SearchTerm string
}

func (p ArticleListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Published != nil {
		q.Set("published", strconv.FormatBool(*p.Published))
	}
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	if p.Author != "" {
		q.Set("author", p.Author)
	}
	if p.SearchTerm != "" {
		q.Set("searchTerm", p.SearchTerm)
	}

	return q
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}

	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

func (c *Client) ListArticles(ctx context.Context, params ArticleListParams) (*ArticlesResponse, error) {
	resp := &ArticlesResponse{}
	if err := c.do(ctx, http.MethodGet, "/articles", params.values(), nil, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) GetArticle(ctx context.Context, slug string) (*ServerArticle, error) {
	article := &ServerArticle{}
	if err := c.do(ctx, http.MethodGet, "/articles/"+escape(slug), nil, nil, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (c *Client) CreateArticle(ctx context.Context, data CreateArticleRequest) (*ServerArticle, error) {
	article := &ServerArticle{}
	if err := c.do(ctx, http.MethodPost, "/articles", nil, data, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (c *Client) UpdateArticle(ctx context.Context, slug string, data UpdateArticleRequest) (*ServerArticle, error) {
	article := &ServerArticle{}
	if err := c.do(ctx, http.MethodPatch, "/articles/"+escape(slug), nil, data, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (c *Client) DeleteArticle(ctx context.Context, slug string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+escape(slug), nil, nil, nil)
}

func (c *Client) RelatedArticles(ctx context.Context, slug string, limit int) ([]ServerArticle, error) {
	var related []ServerArticle
	if err := c.do(ctx, http.MethodGet, "/articles/"+escape(slug)+"/related", limitQuery(limit), nil, &related); err != nil {
		return nil, err
	}

	return related, nil
}

func (c *Client) TagsWithCount(ctx context.Context) ([]TagCount, error) {
	var tags []TagCount
	if err := c.do(ctx, http.MethodGet, "/articles/tags", nil, nil, &tags); err != nil {
		return nil, err
	}

	return tags, nil
}

func (c *Client) PopularTags(ctx context.Context, limit int) ([]TagViews, error) {
	var tags []TagViews
	if err := c.do(ctx, http.MethodGet, "/articles/tags/popular", limitQuery(limit), nil, &tags); err != nil {
		return nil, err
	}

	return tags, nil
}
