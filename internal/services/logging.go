package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// LogOperation logs an outcome at a level matching the error class: client
// mistakes are warnings, missing resources are info and the rest are errors.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, userID models.ID, resourceID models.ID, resourceType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err) || IsBusinessRule(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsUnauthorized(err):
			level = slog.LevelWarn
			status = "unauthorized"
		case IsNotFound(err):
			level = slog.LevelInfo
			status = "not_found"
		case IsUpstream(err):
			status = "upstream_error"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID.String()),
		slog.String("resource_id", resourceID.String()),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var ve ValidationErrors
		var bre *BusinessRuleError
		var pe *PermissionError
		switch {
		case errors.As(err, &ve):
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		case errors.As(err, &bre):
			attrs = append(attrs, slog.String("business_rule", bre.Rule))
		case errors.As(err, &pe):
			attrs = append(attrs, slog.String("permission_action", pe.Action))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, userID models.ID, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("user_id", userID.String()),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i == 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

// ===== AUDIT LOGGING =====

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventUpdate AuditEventType = "update"
	AuditEventDelete AuditEventType = "delete"
	AuditEventGrade  AuditEventType = "grade"
)

type AuditEvent struct {
	Type         AuditEventType         `json:"type"`
	UserID       models.ID              `json:"user_id"`
	ResourceID   models.ID              `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	Action       string                 `json:"action"`
	Timestamp    time.Time              `json:"timestamp"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

func (l *ServiceLogger) LogAuditEvent(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.Type)),
		slog.String("user_id", event.UserID.String()),
		slog.String("resource_id", event.ResourceID.String()),
		slog.String("resource_type", event.ResourceType),
		slog.String("action", event.Action),
		slog.Time("timestamp", event.Timestamp),
	}
	for key, value := range event.Metadata {
		attrs = append(attrs, slog.Any("meta_"+key, value))
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf("Audit: %s %s", event.Action, event.ResourceType), attrs...)
}

// ===== CONTEXTUAL LOGGER =====

// ContextualLogger times one operation and logs its result
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	userID    models.ID
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, userID models.ID) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		userID:    userID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceID models.ID, resourceType string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.userID, resourceID, resourceType, time.Since(cl.startTime), err)

	var ve ValidationErrors
	if errors.As(err, &ve) {
		cl.logger.LogValidationError(cl.ctx, cl.operation, cl.userID, ve)
	}
}

func (cl *ContextualLogger) LogAudit(eventType AuditEventType, resourceID models.ID, resourceType string, metadata map[string]interface{}) {
	cl.logger.LogAuditEvent(cl.ctx, AuditEvent{
		Type:         eventType,
		UserID:       cl.userID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Action:       cl.operation,
		Timestamp:    time.Now(),
		Metadata:     SanitizeForLogging(metadata),
	})
}

// ===== ERROR FORMATTING HELPERS =====

// FormatError describes err for API responses and logs
func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var ve ValidationErrors
	var bre *BusinessRuleError
	var pe *PermissionError
	switch {
	case errors.As(err, &ve):
		result["type"] = "validation"
		result["count"] = len(ve)
		fields := make([]map[string]interface{}, len(ve))
		for i, v := range ve {
			fields[i] = map[string]interface{}{
				"field":   v.Field,
				"message": v.Message,
			}
		}
		result["errors"] = fields
	case errors.As(err, &bre):
		result["type"] = "business_rule"
		result["rule"] = bre.Rule
		result["context"] = bre.Context
	case errors.As(err, &pe):
		result["type"] = "permission"
		result["resource"] = pe.Resource
		result["action"] = pe.Action
		result["reason"] = pe.Reason
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsConflict(err):
		result["type"] = "conflict"
	case IsUnauthorized(err):
		result["type"] = "unauthorized"
	case IsUpstream(err):
		result["type"] = "upstream"
	}

	return result
}

var sensitiveKeys = []string{"password", "token", "secret", "auth", "credential"}

// SanitizeForLogging redacts values whose keys look like credentials
func SanitizeForLogging(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		lowerK := strings.ToLower(k)
		redacted := false
		for _, sk := range sensitiveKeys {
			if strings.Contains(lowerK, sk) {
				redacted = true
				break
			}
		}
		if redacted {
			result[k] = "[REDACTED]"
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			v = SanitizeForLogging(nested)
		}
		result[k] = v
	}
	return result
}
