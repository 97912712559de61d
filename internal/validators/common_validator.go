package validators

import (
	"strings"

	"tourbook/internal/utils"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// ToDetails flattens errors into the field -> message map used by the API
// error envelope.
func (v ValidationErrors) ToDetails() map[string]string {
	details := make(map[string]string, len(v))
	for _, e := range v {
		details[e.Field] = e.Message
	}
	return details
}

func validationErrorsFrom(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !utils.AsValidationErrors(err, &verrs) {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	details := utils.ValidationDetails(err)
	errors := make(ValidationErrors, 0, len(details))
	for field, message := range details {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(field),
			Message: message,
		})
	}

	return errors
}
