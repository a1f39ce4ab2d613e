package model

import (
	"unicode"

	"github.com/SergeyParamoshkin/admin/client"
)

type SEO struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords"`
}

// Article is the panel-side shape of an article. RelatedTags and TagViews
// are maintained by the backend and never sent back.
type Article struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     string         `json:"content"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Author      string         `json:"author"`
	Published   bool           `json:"published"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	SEO         SEO            `json:"seo"`
	RelatedTags map[string]int `json:"relatedTags"`
	TagViews    map[string]int `json:"tagViews"`
}

func ArticleFromServer(a client.ServerArticle) Article {
	return Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Content:     a.Content,
		Description: a.Description,
		Tags:        a.Tags,
		Author:      a.Author,
		Published:   a.Published,
		ImageURL:    a.ImageURL,
		SEO: SEO{
			MetaTitle:       a.SEO.MetaTitle,
			MetaDescription: a.SEO.MetaDescription,
			MetaKeywords:    a.SEO.MetaKeywords,
		},
		RelatedTags: a.RelatedTags,
		TagViews:    a.TagViews,
	}
}

func ArticlesFromServer(in []client.ServerArticle) []Article {
	out := make([]Article, 0, len(in))
	for _, a := range in {
		out = append(out, ArticleFromServer(a))
	}

	return out
}

func (a Article) Status() string {
	if a.Published {
		return "Published"
	}

	return "Draft"
}

// TagPreview returns at most n tags and how many were left out.
func (a Article) TagPreview(n int) ([]string, int) {
	if len(a.Tags) <= n {
		return a.Tags, 0
	}

	return a.Tags[:n], len(a.Tags) - n
}

// Initial is the upper-cased first letter of the author, used as an avatar.
func (a Article) Initial() string {
	for _, r := range a.Author {
		return string(unicode.ToUpper(r))
	}

	return "?"
}
