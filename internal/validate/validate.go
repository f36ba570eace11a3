package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gymDeskAPI/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report field errors under the JSON name the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError pairs a JSON field name with what is wrong with it.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Struct validates a request struct against its `validate` tags and returns a
// 400-mapped apperr carrying per-field details on failure.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid input data", nil)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Error: message(fe)})
	}
	return apperr.Validation("invalid input data", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}
