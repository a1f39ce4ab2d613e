package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seo struct {
	MetaTitle string `json:"metaTitle" validate:"required"`
}

type sample struct {
	Title        string   `json:"title" validate:"required"`
	Slug         string   `json:"slug" validate:"required,slug"`
	Content      string   `json:"content" validate:"richtext"`
	Department   string   `json:"department" validate:"required,department"`
	Requirements []string `json:"requirements" validate:"required,min=1,unique,dive,notblank"`
	SEO          seo      `json:"seo"`
}

func (sample) Messages() Messages {
	return Messages{
		"title.required":           "Title is required",
		"requirements.min":         "At least one requirement is required",
		"requirements[].notblank":  "Each requirement is required",
		"seo.metaTitle.required":   "Meta title is required",
		"department.department":    "Unknown department",
		"requirements.unique":      "Requirements must be unique",
		"content.richtext":         "Content is required",
		"requirements.required":    "Requirements are required",
		"slug.slug":                "Slug may only contain a-z, 0-9 and -",
		"department.required":      "Department is required",
		"slug.required":            "Slug is required",
		"requirements[].required":  "unused",
		"seo.metaDescription.none": "unused",
	}
}

func valid() sample {
	return sample{
		Title:        "Hello",
		Slug:         "hello",
		Content:      "<p>body</p>",
		Department:   "Design",
		Requirements: []string{"Figma"},
		SEO:          seo{MetaTitle: "Hello"},
	}
}

func TestValidRecord(t *testing.T) {
	assert.Nil(t, New().Validate(valid()))
}

func TestFieldPathsAndMessages(t *testing.T) {
	rec := sample{
		Slug:         "Not A Slug",
		Content:      "<p><br></p>",
		Department:   "HR",
		Requirements: []string{"Go", "  "},
	}

	got := New().Validate(rec)

	want := Errors{
		{Path: "title", Message: "Title is required"},
		{Path: "slug", Message: "Slug may only contain a-z, 0-9 and -"},
		{Path: "content", Message: "Content is required"},
		{Path: "department", Message: "Unknown department"},
		{Path: "requirements[1]", Message: "Each requirement is required"},
		{Path: "seo.metaTitle", Message: "Meta title is required"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Meta title is required", got.For("seo.metaTitle"))
	assert.Equal(t, "Each requirement is required", got.Under("requirements"))
	assert.Empty(t, got.For("requirements"))
	assert.Contains(t, got.Error(), "title: Title is required")
}

func TestRequirementListRules(t *testing.T) {
	v := New()

	rec := valid()
	rec.Requirements = []string{}
	require.Equal(t, "At least one requirement is required", v.Validate(rec).For("requirements"))

	rec.Requirements = nil
	require.Equal(t, "Requirements are required", v.Validate(rec).For("requirements"))

	rec.Requirements = []string{"Go", "Go"}
	require.Equal(t, "Requirements must be unique", v.Validate(rec).For("requirements"))
}

type bare struct {
	Name string `json:"name" validate:"required"`
	Site string `json:"site" validate:"omitempty,url"`
}

func (bare) Messages() Messages { return nil }

func TestDefaultMessages(t *testing.T) {
	got := New().Validate(bare{Site: "not a url"})

	assert.Equal(t, Errors{
		{Path: "name", Message: "name is required"},
		{Path: "site", Message: "site must be a valid URL"},
	}, got)
}
