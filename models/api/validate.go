package apimodels

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// ValidateStruct checks the `validate` tags of a request and reports the first failed field.
func ValidateStruct(request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return errors.New(fieldMessage(ve))
	}
	return errors.Wrap(err, "invalid request")
}

func fieldMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", ve.Field())
	case "email":
		return fmt.Sprintf("%v is not a valid email", ve.Field())
	case "url":
		return fmt.Sprintf("%v is not a valid url", ve.Field())
	case "max":
		return fmt.Sprintf("%v is longer than %v", ve.Field(), ve.Param())
	}
	return fmt.Sprintf("%v is invalid (%v)", ve.Field(), ve.Tag())
}
