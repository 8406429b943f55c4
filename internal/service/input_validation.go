package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"fieldcheck/internal/domain"
)

// inputValidate checks request DTOs. Field names in errors are the JSON names
// callers sent.
var inputValidate *govalidator.Validate

func init() {
	inputValidate = govalidator.New(govalidator.WithRequiredStructEnabled())
	inputValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = inputValidate.RegisterValidation("level", func(fl govalidator.FieldLevel) bool {
		return domain.ValidationLevel(fl.Field().String()).IsValid()
	})
	_ = inputValidate.RegisterValidation("status", func(fl govalidator.FieldLevel) bool {
		return domain.ValidationStatus(fl.Field().String()).IsValid()
	})
}

// validateInput runs struct validation and converts the first violation into
// a domain.InputError.
func validateInput(v any) error {
	err := inputValidate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs govalidator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewInputError("request", err.Error())
	}
	fe := verrs[0]
	return domain.NewInputError(fieldPath(fe), reasonFor(fe))
}

func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func reasonFor(fe govalidator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s items", fe.Param())
	case "level":
		return "must be one of hard, soft"
	case "status":
		return "must be one of pending, success, fail, error"
	default:
		return "is invalid"
	}
}
