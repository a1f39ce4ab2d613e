package article

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/richtext"
	"github.com/SergeyParamoshkin/admin/internal/slug"
	"github.com/SergeyParamoshkin/admin/internal/validation"
)

type SEOForm struct {
	MetaTitle       string   `json:"metaTitle" yaml:"metaTitle" validate:"notblank"`
	MetaDescription string   `json:"metaDescription" yaml:"metaDescription" validate:"notblank"`
	MetaKeywords    []string `json:"metaKeywords" yaml:"metaKeywords" validate:"min=1,dive,notblank"`
}

// Form is the editable part of an article. The same record is filled from
// the HTML form and from YAML files by adminctl.
type Form struct {
	Title       string   `json:"title" yaml:"title" validate:"notblank"`
	Slug        string   `json:"slug" yaml:"slug" validate:"notblank,slug"`
	Description string   `json:"description" yaml:"description" validate:"notblank"`
	Content     string   `json:"content" yaml:"content" validate:"richtext"`
	Tags        []string `json:"tags" yaml:"tags" validate:"unique,dive,notblank"`
	Author      string   `json:"author" yaml:"author" validate:"notblank"`
	Published   bool     `json:"published" yaml:"published"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl" validate:"omitempty,http_url"`
	SEO         SEOForm  `json:"seo" yaml:"seo"`
}

func (Form) Messages() validation.Messages {
	return validation.Messages{
		"title.notblank":               "Title is required",
		"slug.notblank":                "Slug is required",
		"slug.slug":                    "Slug may only contain lowercase letters, numbers and hyphens",
		"description.notblank":         "Description is required",
		"content.richtext":             "Content is required",
		"tags.unique":                  "Tags must be unique",
		"tags[].notblank":              "Tags must not be blank",
		"author.notblank":              "Author is required",
		"imageUrl.http_url":            "Image URL must be an absolute http(s) URL",
		"seo.metaTitle.notblank":       "Meta title is required",
		"seo.metaDescription.notblank": "Meta description is required",
		"seo.metaKeywords.min":         "Meta keywords are required",
		"seo.metaKeywords[].notblank":  "Meta keywords must not be blank",
	}
}

// FormFromValues reads a submitted article form. Tags and meta keywords may
// arrive as repeated fields, comma separated text, or both.
func FormFromValues(v url.Values) Form {
	return Form{
		Title:       strings.TrimSpace(v.Get("title")),
		Slug:        strings.TrimSpace(v.Get("slug")),
		Description: strings.TrimSpace(v.Get("description")),
		Content:     v.Get("content"),
		Tags:        SplitList(v["tags"]...),
		Author:      strings.TrimSpace(v.Get("author")),
		Published:   checked(v.Get("published")),
		ImageURL:    strings.TrimSpace(v.Get("imageUrl")),
		SEO: SEOForm{
			MetaTitle:       strings.TrimSpace(v.Get("seo.metaTitle")),
			MetaDescription: strings.TrimSpace(v.Get("seo.metaDescription")),
			MetaKeywords:    SplitList(v["seo.metaKeywords"]...),
		},
	}
}

func FormFromArticle(a model.Article) Form {
	return Form{
		Title:       a.Title,
		Slug:        a.Slug,
		Description: a.Description,
		Content:     a.Content,
		Tags:        a.Tags,
		Author:      a.Author,
		Published:   a.Published,
		ImageURL:    a.ImageURL,
		SEO: SEOForm{
			MetaTitle:       a.SEO.MetaTitle,
			MetaDescription: a.SEO.MetaDescription,
			MetaKeywords:    a.SEO.MetaKeywords,
		},
	}
}

// DeriveSlug fills an empty slug from the title.
func (f *Form) DeriveSlug() {
	if f.Slug == "" {
		f.Slug = slug.Make(f.Title)
	}
}

func (f Form) seo() client.SEOInput {
	return client.SEOInput{
		MetaTitle:       f.SEO.MetaTitle,
		MetaDescription: f.SEO.MetaDescription,
		MetaKeywords:    f.SEO.MetaKeywords,
	}
}

func (f Form) CreateRequest(s *richtext.Sanitizer) client.CreateArticleRequest {
	return client.CreateArticleRequest{
		Title:       f.Title,
		Slug:        f.Slug,
		Content:     s.Sanitize(f.Content),
		Description: f.Description,
		Tags:        nonNil(f.Tags),
		Author:      f.Author,
		Published:   f.Published,
		ImageURL:    f.ImageURL,
		SEO:         f.seo(),
	}
}

// UpdateRequest sends every form field, tags included when the list is empty.
func (f Form) UpdateRequest(s *richtext.Sanitizer) client.UpdateArticleRequest {
	content := s.Sanitize(f.Content)
	seo := f.seo()
	tags := nonNil(f.Tags)

	return client.UpdateArticleRequest{
		Title:       &f.Title,
		Slug:        &f.Slug,
		Content:     &content,
		Description: &f.Description,
		Tags:        &tags,
		Author:      &f.Author,
		Published:   &f.Published,
		ImageURL:    &f.ImageURL,
		SEO:         &seo,
	}
}

// SplitList splits comma separated entries, trims them and drops blanks and
// repeats while keeping the first-seen order.
func SplitList(raw ...string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, field := range raw {
		for _, item := range strings.Split(field, ",") {
			item = strings.TrimSpace(item)
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}

	return out
}

func checked(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)

	return b
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}
