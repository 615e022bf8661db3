package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps request fields, by their JSON names, to messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error lists the field messages in field order
func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for f := range v.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v.Errors[f]
	}
	return strings.Join(parts, "; ")
}

// Add records message for field, replacing an earlier one
func (v *ValidationError) Add(field, message string) {
	if v.Errors == nil {
		v.Errors = make(map[string]string)
	}
	v.Errors[field] = message
}

// Field returns the message recorded for field
func (v *ValidationError) Field(field string) (string, bool) {
	msg, ok := v.Errors[field]
	return msg, ok
}

// Empty reports whether no field failed
func (v *ValidationError) Empty() bool {
	return len(v.Errors) == 0
}

// tagMessages renders one failed tag; %[1]s is the field and %[2]s the tag parameter
var tagMessages = map[string]string{
	"required":      "%[1]s is required",
	"min":           "%[1]s must be at least %[2]s",
	"max":           "%[1]s must be at most %[2]s",
	"gte":           "%[1]s must be greater than or equal to %[2]s",
	"lte":           "%[1]s must be less than or equal to %[2]s",
	"oneof":         "%[1]s must be one of: %[2]s",
	"dive":          "%[1]s has an invalid element",
	"score":         "%[1]s must be a score between 0 and 100",
	"image_data":    "%[1]s must be base64 image data or a data:image URI",
	"collection_id": "%[1]s may only contain letters, digits, '_', '.' and '-'",
	"scenario":      "%[1]s must be one of normal, photo, blocked",
}

func fromValidator(errs validator.ValidationErrors) *ValidationError {
	v := &ValidationError{Errors: make(map[string]string, len(errs))}
	for _, fe := range errs {
		format, ok := tagMessages[fe.Tag()]
		if !ok {
			format = "%[1]s is invalid"
		}
		v.Add(fe.Field(), fmt.Sprintf(format, fe.Field(), fe.Param()))
	}
	return v
}
