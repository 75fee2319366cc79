package errors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// Add appends an error and returns the collection for chaining.
func (ve ValidationErrors) Add(field, message string, value interface{}) ValidationErrors {
	return append(ve, ValidationError{Field: field, Message: message, Value: value})
}

// Fields lists the failing field names in order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field)
	}
	return fields
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validatorErr {
			errors = append(errors, ValidationError{
				Field:   fieldPath(err),
				Message: getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// fieldPath drops the root struct name from the namespace ("QuizForm.questions[0]" -> "questions[0]").
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "url":
		return "must be a valid URL"

	// Custom validators
	case "quiz_type":
		return "must be a valid quiz type (mcq, true_false, fill_blanks, subjective)"
	case "assignment_type":
		return "must be a valid assignment type (exercise, project, quiz, essay)"
	case "assignment_status":
		return "must be draft or published"
	case "user_role":
		return "must be a valid user role (student, instructor, admin, super_admin)"
	case "lesson_duration":
		return "must be formatted as MM:SS"
	case "price":
		return "must be a number greater than or equal to 0"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
