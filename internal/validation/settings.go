package validation

import (
	"fmt"

	"media-dupes/internal/models"

	"github.com/go-playground/validator/v10"
)

// MediaURLTag validates a string field with ValidateURL.
const MediaURLTag = "mediaurl"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation(MediaURLTag, validateMediaURL)
}

func validateMediaURL(fl validator.FieldLevel) bool {
	return ValidateURL(fl.Field().String())
}

// Struct validates a struct against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// ValidateSettings checks the resolved settings before a batch may use them.
func ValidateSettings(s *models.Settings) error {
	if s == nil {
		return fmt.Errorf("settings are nil")
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
