package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/storemanager/store-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in failures are the JSON names clients send.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. The first failing field
// is reported as a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fieldError(ve[0])
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a domain validation error.
func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "key missing")
	case "email":
		return domain.NewValidationError(field, "must be a valid email")
	case "gt":
		return domain.NewValidationError(field, "must be greater than %s", fe.Param())
	case "gte":
		return domain.NewValidationError(field, "must be at least %s", fe.Param())
	case "min":
		return domain.NewValidationError(field, "must be at least %s", fe.Param())
	default:
		return domain.NewValidationError(field, "failed validation (%s)", fe.Tag())
	}
}
