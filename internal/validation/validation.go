// Package validation evaluates declarative field rules against typed form
// records. Rules live in `validate` struct tags; messages live in a table
// keyed by field path and rule, so the forms keep the wording users know.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/admin/internal/model"
	"github.com/SergeyParamoshkin/admin/internal/richtext"
)

// FieldError is one failed rule. Path uses JSON names, e.g. "seo.metaTitle"
// or "requirements[1]".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Path+": "+fe.Message)
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// For returns the first message for path, or "".
func (e Errors) For(path string) string {
	for _, fe := range e {
		if fe.Path == path {
			return fe.Message
		}
	}

	return ""
}

// Under returns the first message for path or any of its elements
// ("requirements" also matches "requirements[2]").
func (e Errors) Under(path string) string {
	for _, fe := range e {
		if fe.Path == path || strings.HasPrefix(fe.Path, path+"[") || strings.HasPrefix(fe.Path, path+".") {
			return fe.Message
		}
	}

	return ""
}

// Messages is a rule table: "path.rule" → message. Element paths drop the
// index, so "requirements[].notblank" covers every element.
type Messages map[string]string

// Record is a form that carries its own message table.
type Record interface {
	Messages() Messages
}

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	indexes     = regexp.MustCompile(`\[\d+\]`)
)

// Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	registerRules(validate)

	return &Validator{validate: validate}
}

// Validate returns nil when record passes every rule.
func (v *Validator) Validate(record Record) Errors {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Path: "", Message: err.Error()}}
	}

	messages := record.Messages()
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		out = append(out, FieldError{Path: path, Message: message(messages, path, fe)})
	}

	return out
}

// fieldPath strips the struct name validator puts in front of the namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}

	return namespace
}

func message(messages Messages, path string, fe validator.FieldError) string {
	key := indexes.ReplaceAllString(path, "[]") + "." + fe.Tag()
	if m, ok := messages[key]; ok {
		return m
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank", "richtext":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "slug":
		return fmt.Sprintf("%s may only contain lowercase letters, numbers and hyphens", field)
	case "department", "employment_type", "location", "experience":
		return fmt.Sprintf("%s is not one of the allowed values", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func registerRules(validate *validator.Validate) {
	rules := map[string]func(string) bool{
		"notblank":        func(s string) bool { return strings.TrimSpace(s) != "" },
		"slug":            slugPattern.MatchString,
		"richtext":        func(s string) bool { return !richtext.IsBlank(s) },
		"department":      model.IsDepartment,
		"employment_type": model.IsEmploymentType,
		"location":        model.IsLocation,
		"experience":      model.IsExperienceLevel,
	}

	for tag, fn := range rules {
		fn := fn
		// registration only fails on an empty tag or nil func
		_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
	}
}
