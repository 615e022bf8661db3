package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once

	collectionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// Get returns the shared validator with the custom KYC tags registered
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("score", validateScore)
		_ = validate.RegisterValidation("image_data", validateImageData)
		_ = validate.RegisterValidation("collection_id", validateCollectionID)
		_ = validate.RegisterValidation("scenario", validateScenario)
	})
	return validate
}

// ValidateStruct validates s and converts validator errors into a ValidationError
func ValidateStruct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fromValidator(verrs)
	}
	return err
}

// jsonFieldName reports fields by their JSON key so messages match the request body
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func validateScore(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= 0 && v <= 100
}

// Accepts raw base64 or a data:image/...;base64, URI. Content is decoded later.
func validateImageData(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "data:") {
		return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
	}
	return true
}

func validateCollectionID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= 255 && collectionIDPattern.MatchString(s)
}

func validateScenario(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "normal", "photo", "blocked":
		return true
	}
	return false
}
