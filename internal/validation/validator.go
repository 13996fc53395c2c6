// Package validation checks form drafts before they are sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator and reports fields by their JSON
// names, which is what the form labels are keyed on.
type Validator struct {
	v *validator.Validate
}

// FieldErrors maps a JSON field name to a human readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+fe[f])
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		return name
	})

	return &Validator{v: v}
}

// Validate returns FieldErrors when s violates its validate tags.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}

		fields := make(FieldErrors, len(validationErrs))
		for _, e := range validationErrs {
			fields[e.Field()] = friendlyMessage(e)
		}
		return fields
	}
	return nil
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return "is invalid"
	}
}
