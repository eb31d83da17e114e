package passwords

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate     = newValidator()
	queryEncoder = schema.NewEncoder()
)

// previewSizeRe matches "640", "360...", "...720" and "240...720".
var previewSizeRe = regexp.MustCompile(`^(\d+|\d+\.\.\.|\.\.\.\d+|\d+\.\.\.\d+)$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("preview_size", func(fl validator.FieldLevel) bool {
		return previewSizeRe.MatchString(fl.Field().String())
	})
	return v
}

// check validates v and reports failures as invalid_argument errors for op.
func check(op string, v any) error {
	if err := validate.Struct(v); err != nil {
		return wrapError(op, err)
	}
	return nil
}
