package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Validate checks struct tags and reports failing fields as a validation error.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationError("invalid input")
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return ValidationError("%s", strings.Join(parts, "; "))
}
