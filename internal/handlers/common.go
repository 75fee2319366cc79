package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append(h.contextFields(c),
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
	)
	fields = append(fields, additionalFields...)
	h.requestLogger(c).InfoContext(c.Request.Context(), message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := append(h.contextFields(c), additionalFields...)
	h.requestLogger(c).LogError(err, message, fields...)
}

// LogDebug logs debug information with context
func (h *BaseHandler) LogDebug(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append(h.contextFields(c), additionalFields...)
	h.requestLogger(c).DebugContext(c.Request.Context(), message, fields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append(h.contextFields(c), additionalFields...)
	h.requestLogger(c).WarnContext(c.Request.Context(), message, fields...)
}

// requestLogger prefers the logger ContextLogger scoped to this request since
// it already carries the request fields.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if _, exists := c.Get(utils.LoggerContextKey); exists {
		return utils.GetLoggerFromContext(c)
	}
	return h.logger.With(
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

func (h *BaseHandler) contextFields(c *gin.Context) []interface{} {
	return []interface{}{"user_id", h.extractUserID(c)}
}

// Helper method to extract user ID from context
func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, exists := c.Get(userIDKey); exists {
		return userID
	}
	return nil
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service error classes onto HTTP statuses. Field
// errors are checked first since several sentinels wrap them.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: validationMessage(err),
			Details: validationErrors,
			Code:    "validation_failed",
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
			Code: "business_rule",
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
			Code: "forbidden",
		})
		return
	}

	var apiErr *backend.APIError
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundMessage(err), Code: "not_found"})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: conflictMessage(err), Code: "conflict"})
	case backend.IsStatus(err, http.StatusUnauthorized):
		h.LogWarn(c, "Backend rejected forwarded token", "error", err)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Session rejected by backend", Code: "unauthorized"})
	case services.IsUnauthorized(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Forbidden - insufficient permissions", Code: "forbidden"})
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: apiErr.Message, Code: "rejected"})
	case services.IsUpstream(err):
		h.LogError(c, err, "Backend unavailable", "error_info", services.FormatError(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: "Backend unavailable, please retry", Code: "upstream"})
	default:
		h.LogError(c, err, "Unexpected service error", "error_info", services.FormatError(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrUploadRejected):
		return "Upload rejected"
	case errors.Is(err, services.ErrInstructorRequired):
		return "An instructor must be selected"
	case errors.Is(err, services.ErrUnknownInstructor):
		return "Selected instructor does not exist"
	case errors.Is(err, services.ErrStudentNotEnrolled):
		return "Assigned students must be enrolled in the course"
	case errors.Is(err, services.ErrMarksOutOfRange):
		return "Marks out of range"
	case errors.Is(err, services.ErrFileRequired):
		return "A file is required"
	default:
		return "Validation failed"
	}
}

func notFoundMessage(err error) string {
	sentinels := []error{
		services.ErrCourseNotFound,
		services.ErrModuleNotFound,
		services.ErrLessonNotFound,
		services.ErrAssignmentNotFound,
		services.ErrSubmissionNotFound,
		services.ErrQuizNotFound,
		services.ErrQuizDraftNotFound,
		services.ErrProgressNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "Resource not found"
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrDeleteUnconfirmed):
		return "Deletion must be confirmed with confirm=true"
	case errors.Is(err, services.ErrQuizTypeChangeUnconfirmed):
		return services.ErrQuizTypeChangeUnconfirmed.Error()
	default:
		return "Resource conflict"
	}
}
