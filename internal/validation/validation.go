// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// length bounds or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Field names in errors are taken from the json/query tags so clients see
// "template_id" rather than "TemplateID".
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(wireName)
		validate = v
	})
	return validate
}

// ValidateStruct runs the tag rules of s and returns validator.ValidationErrors
// holding every failed constraint.
func ValidateStruct(s any) error {
	return Validator().Struct(s)
}

func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}
