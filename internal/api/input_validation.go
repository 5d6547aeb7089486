package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/services"
)

func newPayloadValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// parsePayload decodes the JSON body into payload and validates its tags.
// Both failures wrap services.ErrValidation.
func (handler *Handler) parsePayload(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return fmt.Errorf("%w: invalid payload", services.ErrValidation)
	}
	if err := handler.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %s", services.ErrValidation, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	first := fieldErrors[0]
	switch first.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", first.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", first.Field(), strings.ReplaceAll(first.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", first.Field(), first.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", first.Field(), first.Param())
	default:
		return fmt.Sprintf("%s is invalid", first.Field())
	}
}
