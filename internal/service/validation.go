package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/lostfound/internal/model"
)

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// max counts runes; bcrypt limits bytes.
	if err := v.RegisterValidation("bcrypt", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs the validate tags of v and reports failures as
// model.ErrInvalidArgument.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	return invalidArgument(err)
}

// validateVar checks a single value against tag.
func validateVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s: failed on %q", model.ErrInvalidArgument, field, tag)
	}
	return nil
}

func invalidArgument(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidArgument, strings.Join(parts, ", "))
}
