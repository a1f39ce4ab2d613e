package position

import (
	"net/url"
	"strings"

	"github.com/SergeyParamoshkin/admin/client"
	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/validation"
)

// Form is the editable part of a position, shared by the HTML form and
// adminctl YAML files.
type Form struct {
	Title        string             `json:"title" yaml:"title" validate:"notblank"`
	Department   string             `json:"department" yaml:"department" validate:"notblank,department"`
	Type         string             `json:"type" yaml:"type" validate:"notblank,employment_type"`
	Location     string             `json:"location" yaml:"location" validate:"notblank,location"`
	Experience   string             `json:"experience" yaml:"experience" validate:"notblank,experience"`
	Description  string             `json:"description" yaml:"description" validate:"notblank"`
	Requirements model.Requirements `json:"requirements" yaml:"requirements" validate:"required,min=1,unique,dive,notblank"`
}

func (Form) Messages() validation.Messages {
	return validation.Messages{
		"title.notblank":          "Title is required",
		"department.notblank":     "Department is required",
		"department.department":   "Department must be one of the listed departments",
		"type.notblank":           "Employment type is required",
		"type.employment_type":    "Employment type must be one of the listed types",
		"location.notblank":       "Location is required",
		"location.location":       "Location must be one of the listed locations",
		"experience.notblank":     "Experience is required",
		"experience.experience":   "Experience must be one of the listed levels",
		"description.notblank":    "Description is required",
		"requirements.required":   "Requirements are required",
		"requirements.min":        "At least one requirement is required",
		"requirements.unique":     "Requirements must be unique",
		"requirements[].notblank": "Each requirement is required",
	}
}

// FormFromValues reads a submitted position form. Requirements come back as
// repeated hidden fields in list order.
func FormFromValues(v url.Values) Form {
	f := Form{
		Title:        strings.TrimSpace(v.Get("title")),
		Department:   v.Get("department"),
		Type:         v.Get("type"),
		Location:     v.Get("location"),
		Experience:   v.Get("experience"),
		Description:  strings.TrimSpace(v.Get("description")),
		Requirements: model.Requirements{},
	}

	for _, req := range v["requirements"] {
		f.Requirements = append(f.Requirements, strings.TrimSpace(req))
	}

	return f
}

func FormFromPosition(p model.Position) Form {
	reqs := append(model.Requirements{}, p.Requirements...)

	return Form{
		Title:        p.Title,
		Department:   p.Department,
		Type:         p.Type,
		Location:     p.Location,
		Experience:   p.Experience,
		Description:  p.Description,
		Requirements: reqs,
	}
}

func (f Form) CreateRequest() client.CreatePositionRequest {
	return client.CreatePositionRequest{
		Title:        f.Title,
		Department:   f.Department,
		Type:         f.Type,
		Location:     f.Location,
		Experience:   f.Experience,
		Description:  f.Description,
		Requirements: []string(f.Requirements),
	}
}

func (f Form) UpdateRequest() client.UpdatePositionRequest {
	reqs := append([]string{}, f.Requirements...)

	return client.UpdatePositionRequest{
		Title:        &f.Title,
		Department:   &f.Department,
		Type:         &f.Type,
		Location:     &f.Location,
		Experience:   &f.Experience,
		Description:  &f.Description,
		Requirements: &reqs,
	}
}
