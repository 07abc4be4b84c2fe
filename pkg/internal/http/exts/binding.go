package exts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validation.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			if name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]; len(name) > 0 && name != "-" {
				return name
			}
		}
		return field.Name
	})
}

func ValidateSchema(data any) error {
	err := validation.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return InvalidFields(fieldErrs)
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// InvalidFields renders validator failures as a bad request naming the offending fields.
func InvalidFields(errs validator.ValidationErrors) error {
	fields := lo.Uniq(lo.Map(errs, func(item validator.FieldError, _ int) string {
		return item.Field()
	}))
	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("missing or invalid fields: %s", strings.Join(fields, ", ")))
}

// Bind parses the body without validating it, for handlers that clean up input first.
func Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := Bind(c, out); err != nil {
		return err
	}
	return ValidateSchema(out)
}

func BindQueryAndValidate(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid query: %v", err))
	}
	return ValidateSchema(out)
}
