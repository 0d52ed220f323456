package apperror

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewValidator returns a validator that reports fields by their json tag
// names, so mapped messages match the field names users see on the wire.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError turns the first validation failure into a user-facing
// AppError.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())
		switch e.Tag() {
		case "required":
			return New(CodeInvalidInput, field+" is required", 0)
		case "oneof":
			return New(CodeInvalidInput, field+" must be one of: "+e.Param(), 0)
		default:
			return New(CodeInvalidInput, field+" is invalid", 0)
		}
	}
	return New(CodeInvalidInput, "Invalid input", 0)
}
