// Package validation derives the wizard's error sets from onboarding data.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/rut"
)

// emailPattern is deliberately permissive: something@something.something, no spaces
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON name so errors line up with the exported payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return rut.IsValid(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// IsValidEmail applies the permissive address pattern to the trimmed value
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// fieldFailure is one failed struct tag, keyed by JSON field name
type fieldFailure struct {
	Field string
	Tag   string
}

// checkStruct runs the struct tags on v and returns failures in declaration order.
// validator stops at the first failing tag of each field.
func checkStruct(v any) []fieldFailure {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldFailure{{Field: "", Tag: err.Error()}}
	}
	out := make([]fieldFailure, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldFailure{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
