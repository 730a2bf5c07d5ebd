package validate

import (
	"fmt"
	"reflect"
	"strings"

	"refermark-server/pkg/errutil"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates s and returns a ValidationFailed error carrying one
// detail per violated field, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errutil.Internal("validation failed", errutil.WithErr(err))
	}

	details := make([]errutil.Detail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, errutil.Detail{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return errutil.ValidationFailed("validation failed", errutil.WithDetails(details...))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a value for %s", fe.Field())
	case "email":
		return fmt.Sprintf("Please provide a valid email for %s", fe.Field())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), "'", ""))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
