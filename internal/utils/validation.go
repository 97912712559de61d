package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("day_key", validateDayKey)
	validate.RegisterValidation("rating", validateRating)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationDetails flattens validator errors into a field -> message map for
// the API error envelope.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if ok := AsValidationErrors(err, &verrs); !ok {
		details["request"] = err.Error()
		return details
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "min":
			details[field] = "must be at least " + fe.Param()
		case "max":
			details[field] = "must be at most " + fe.Param()
		case "oneof":
			details[field] = "must be one of: " + fe.Param()
		case "day_key":
			details[field] = "must be a YYYY-MM-DD date or RFC 3339 timestamp"
		case "rating":
			details[field] = "must be an integer between 1 and 5"
		default:
			details[field] = "is invalid"
		}
	}

	return details
}

func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}

func validateDayKey(fl validator.FieldLevel) bool {
	_, err := ParseDayKey(fl.Field().String())
	return err == nil
}

func validateRating(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= MinRating && rating <= MaxRating
}

func IsValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^\+?[0-9\-\s]{7,15}$`)
	return phoneRegex.MatchString(phone)
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}
