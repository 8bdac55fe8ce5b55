package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"book-loan-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
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

// validateStruct reports only the first failing field.
func validateStruct(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return domain.NewValidationError(fmt.Sprintf("%q is required", fe.Field()))
		default:
			return domain.NewValidationError(fmt.Sprintf("%q is invalid", fe.Field()))
		}
	}
	return domain.NewValidationError(err.Error())
}
