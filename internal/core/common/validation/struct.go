package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	errors "github.com/frahmantamala/asset-management/internal"
	"github.com/go-playground/validator/v10"
)

var (
	structValidator *validator.Validate
	once            sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		// report json names so field errors line up with request bodies
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}

// Struct runs the `validate` tags of s and converts failures into a validation AppError.
func Struct(s interface{}) *errors.AppError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	out := make([]errors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, errors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    codeFor(fe),
		})
	}
	return collect(out)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), "'", ""))
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func codeFor(fe validator.FieldError) string {
	if fe.Tag() != "oneof" {
		return string(errors.ErrCodeValidationFailed)
	}
	if strings.EqualFold(fe.Field(), "status") || strings.HasSuffix(fe.Field(), "_status") {
		return string(errors.ErrCodeInvalidStatus)
	}
	if strings.EqualFold(fe.Field(), "type") {
		return string(errors.ErrCodeInvalidType)
	}
	return string(errors.ErrCodeValidationFailed)
}
