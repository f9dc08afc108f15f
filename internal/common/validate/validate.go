// Package validate provides declarative per-field input checks. Violations
// for a given input are collected in field order; validation never stops at
// the first failure.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is a single structured validation failure.
type Violation struct {
	Message string `json:"message"`
}

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the `validate` tags of s and returns every violation found.
// An empty slice means the input is valid.
func Struct(s interface{}) []Violation {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Message: "invalid input"}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{Message: messageFor(fe)})
	}
	return violations
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("invalid %s", field)
	}
}
