package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/validator"
)

type assignmentService struct {
	repo      repositories.AssignmentRepository
	courses   repositories.CourseRepository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
	log       *ServiceLogger
}

func NewAssignmentService(repo repositories.AssignmentRepository, courses repositories.CourseRepository, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		courses:   courses,
		validator: v,
		publisher: publisher,
		logger:    logger,
		log:       NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "AssignmentService"}),
	}
}

func (s *assignmentService) List(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	assignments, err := s.repo.ListAssignments(ctx, courseID)
	if err != nil {
		return nil, upstreamError(err, ErrCourseNotFound)
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// Create stores a new draft assignment. The attachment, when present, is
// sent as multipart; otherwise the body is plain JSON.
func (s *assignmentService) Create(ctx context.Context, user models.CurrentUser, form *models.AssignmentForm) (*models.Assignment, error) {
	op := s.log.WithOperation(ctx, "create_assignment", user.ID)

	payload, err := s.buildPayload(ctx, user, "", form)
	if err != nil {
		op.LogResult("", "assignment", err)
		return nil, err
	}
	payload.Status = models.AssignmentDraft

	assignment, err := s.repo.CreateAssignment(ctx, payload, form.Attachment)
	if err != nil {
		err = upstreamError(err, ErrCourseNotFound)
		op.LogResult("", "assignment", err)
		return nil, err
	}
	op.LogResult(assignment.ID, "assignment", nil)
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.AssignmentForm) (*models.Assignment, error) {
	op := s.log.WithOperation(ctx, "update_assignment", user.ID)

	payload, err := s.buildPayload(ctx, user, id, form)
	if err != nil {
		op.LogResult(id, "assignment", err)
		return nil, err
	}

	assignment, err := s.repo.UpdateAssignment(ctx, id, payload, form.Attachment)
	err = upstreamError(err, ErrAssignmentNotFound)
	op.LogResult(id, "assignment", err)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// SetStatus is the only way to publish or unpublish an assignment.
func (s *assignmentService) SetStatus(ctx context.Context, user models.CurrentUser, id models.ID, status models.AssignmentStatus) (*models.Assignment, error) {
	op := s.log.WithOperation(ctx, "set_assignment_status", user.ID)

	if !user.Role.CanAuthor() {
		err := NewPermissionError(user.ID.String(), id.String(), "assignment", "change status", "role cannot manage assignments")
		op.LogResult(id, "assignment", err)
		return nil, err
	}
	switch status {
	case models.AssignmentDraft, models.AssignmentPublished:
	default:
		err := ValidationErrors{}.Add("status", "must be one of: draft published", status)
		op.LogResult(id, "assignment", err)
		return nil, err
	}

	assignment, err := s.repo.SetAssignmentStatus(ctx, id, status)
	err = upstreamError(err, ErrAssignmentNotFound)
	op.LogResult(id, "assignment", err)
	if err != nil {
		return nil, err
	}

	if status == models.AssignmentPublished {
		if err := s.publisher.Publish(ctx, events.NewAssignmentPublishedEvent(assignment, user.ID)); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish assignment event", "assignment_id", id, "error", err)
		}
	}
	return assignment, nil
}

// buildPayload collects every field problem into one error so the caller can
// fix the whole form at once.
func (s *assignmentService) buildPayload(ctx context.Context, user models.CurrentUser, id models.ID, form *models.AssignmentForm) (*backend.AssignmentPayload, error) {
	if !user.Role.CanAuthor() {
		return nil, NewPermissionError(user.ID.String(), id.String(), "assignment", "write", "role cannot manage assignments")
	}

	var verrs ValidationErrors
	if err := s.validator.ValidateStruct(form); err != nil {
		if !errors.As(err, &verrs) {
			return nil, err
		}
	}
	if !form.DueDate.IsZero() {
		verrs = append(verrs, s.validator.Business().ValidateDueDate(form.DueDate.Time)...)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := s.checkRoster(ctx, form.CourseID, form.AssignedStudents); err != nil {
		return nil, err
	}

	return &backend.AssignmentPayload{
		CourseID:         form.CourseID,
		Title:            form.Title,
		Description:      form.Description,
		Instructions:     form.Instructions,
		Type:             form.Type,
		MaxPoints:        form.MaxPoints,
		DueDate:          form.DueDate.Time,
		AssignedStudents: form.AssignedStudents,
	}, nil
}

// checkRoster requires every assigned student to be enrolled. An empty list
// targets the whole course and needs no lookup.
func (s *assignmentService) checkRoster(ctx context.Context, courseID models.ID, assigned []models.ID) error {
	if len(assigned) == 0 {
		return nil
	}
	roster, err := s.courses.ListEnrolledStudents(ctx, courseID)
	if err != nil {
		return upstreamError(err, ErrCourseNotFound)
	}
	enrolled := make(map[models.ID]bool, len(roster))
	for _, st := range roster {
		enrolled[st.ID] = true
	}

	var verrs ValidationErrors
	for i, id := range assigned {
		if !enrolled[id] {
			verrs = verrs.Add(fmt.Sprintf("assigned_students[%d]", i), "student is not enrolled in the course", id)
		}
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%w: %w", ErrStudentNotEnrolled, verrs)
	}
	return nil
}
