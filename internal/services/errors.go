package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	apperrors "github.com/SAP-F-2025/course-studio/internal/errors"
	"github.com/SAP-F-2025/course-studio/internal/progress"
	"github.com/SAP-F-2025/course-studio/internal/repositories/postgres"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")
	ErrUpstream         = errors.New("upstream service failure")

	// Course hierarchy errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrDeleteUnconfirmed  = errors.New("deletion requires confirmation")
	ErrInstructorRequired = errors.New("an instructor must be selected")
	ErrUnknownInstructor  = errors.New("selected instructor does not exist")
	ErrUploadRejected     = errors.New("upload rejected")

	// Assignment and quiz errors
	ErrAssignmentNotFound        = errors.New("assignment not found")
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrQuizNotFound              = errors.New("quiz not found")
	ErrQuizDraftNotFound         = errors.New("quiz draft not found")
	ErrQuizTypeChangeUnconfirmed = errors.New("changing quiz type discards existing questions")
	ErrStudentNotEnrolled        = errors.New("assigned student is not enrolled in the course")
	ErrMarksOutOfRange           = errors.New("marks out of range")
	ErrFileRequired              = errors.New("a file is required")

	// Progress errors
	ErrProgressNotFound = errors.New("no progress recorded for lesson")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func (pe *PermissionError) Unwrap() error {
	return ErrForbidden
}

// ===== ERROR HELPERS =====

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// upstreamError tags a backend 404 with the resource's sentinel so callers
// can test with errors.Is.
func upstreamError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && backend.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", notFound, err)
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuizDraftNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, postgres.ErrDraftNotFound) ||
		errors.Is(err, progress.ErrNotFound) ||
		backend.IsStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		backend.IsStatus(err, http.StatusUnauthorized) ||
		backend.IsStatus(err, http.StatusForbidden)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDeleteUnconfirmed) ||
		errors.Is(err, ErrQuizTypeChangeUnconfirmed) ||
		backend.IsStatus(err, http.StatusConflict)
}

// IsUpstream reports backend failures that are not a client mistake: transport
// errors and 5xx responses.
func IsUpstream(err error) bool {
	if errors.Is(err, ErrUpstream) || errors.Is(err, backend.ErrTransport) {
		return true
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
