package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// lists the fields that failed validation
type ValidationError struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}

	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}

	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// trims whitespace and fills defaults for the optional enumerated fields
func Normalize(input BrandInput) BrandInput {
	input.BrandName = strings.TrimSpace(input.BrandName)
	input.Industry = Industry(strings.TrimSpace(string(input.Industry)))
	input.TargetAudience = strings.TrimSpace(input.TargetAudience)
	input.Context = strings.TrimSpace(input.Context)

	input.Platform = Platform(strings.TrimSpace(string(input.Platform)))
	if input.Platform == "" {
		input.Platform = DefaultPlatform
	}

	input.Tone = Tone(strings.TrimSpace(string(input.Tone)))
	if input.Tone == "" {
		input.Tone = DefaultTone
	}

	input.ContentType = ContentType(strings.TrimSpace(string(input.ContentType)))
	if input.ContentType == "" {
		input.ContentType = DefaultContentType
	}

	return input
}

// checks that brand name, industry and target audience are present and enumerated fields are known
func Validate(input BrandInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate brand input: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			verr.Missing = append(verr.Missing, fe.Field())
		} else {
			verr.Invalid = append(verr.Invalid, fe.Field())
		}
	}

	return verr
}
