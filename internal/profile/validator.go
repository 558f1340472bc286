package profile

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form field names, as used in field-level errors.
const (
	FieldEmail        = "email"
	FieldUserName     = "userName"
	FieldPassword     = "password"
	FieldProfileImage = "profileImage"
)

const (
	minUserNameLength = 3
	minPasswordLength = 8
)

// FormInput is the raw content of the profile form.
type FormInput struct {
	Email        string `json:"email" validate:"required,email"`
	UserName     string `json:"userName" validate:"min=3"`
	Password     string `json:"password" validate:"omitempty,min=8"`
	ProfileImage *File  `json:"profileImage"`
}

// ValidProfile is a form that passed validation. An empty Password means
// "leave the password unchanged".
type ValidProfile struct {
	Email        string
	UserName     string
	Password     string
	ProfileImage *File
}

// ValidationError maps form fields to human-readable reasons.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Field returns the reason recorded for field.
func (e *ValidationError) Field(name string) (string, bool) {
	msg, ok := e.Fields[name]
	return msg, ok
}

// Validator checks profile form input.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field errors are keyed by json names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks every field and returns either a complete ValidProfile or a
// *ValidationError listing every failing field.
func (v *Validator) Validate(in FormInput) (ValidProfile, error) {
	if err := v.check(in); err != nil {
		return ValidProfile{}, err
	}

	return ValidProfile{
		Email:        in.Email,
		UserName:     in.UserName,
		Password:     in.Password,
		ProfileImage: in.ProfileImage,
	}, nil
}

// ValidateImage checks a file picked for the avatar.
func (v *Validator) ValidateImage(file File) error {
	err := v.validate.Struct(file)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate image: %w", err)
	}
	return &ValidationError{Fields: map[string]string{
		FieldProfileImage: message(FieldProfileImage, fieldErrs[0]),
	}}
}

func (v *Validator) check(in FormInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate profile: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := topLevelField(fe.Namespace())
		if _, seen := out.Fields[field]; seen {
			continue
		}
		out.Fields[field] = message(field, fe)
	}
	return out
}

// topLevelField turns "FormInput.profileImage.contentType" into "profileImage".
func topLevelField(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return namespace
	}
	return parts[1]
}

func message(field string, fe validator.FieldError) string {
	switch field {
	case FieldEmail:
		if fe.Tag() == "required" {
			return "email is required"
		}
		return "must be a valid email address"
	case FieldUserName:
		return fmt.Sprintf("must be at least %d characters", minUserNameLength)
	case FieldPassword:
		return fmt.Sprintf("must be at least %d characters", minPasswordLength)
	case FieldProfileImage:
		return "must be a JPEG or PNG image"
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
