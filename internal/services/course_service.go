package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/cache"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/validator"
)

type courseService struct {
	repo      repositories.CourseRepository
	validator *validator.Validator
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	log       *ServiceLogger
}

func NewCourseService(repo repositories.CourseRepository, v *validator.Validator, publisher events.EventPublisher, cacheService cache.CacheService, logger *slog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		log:       NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "CourseService"}),
	}
}

// Submit creates a course. New courses always start Pending and unpublished;
// there is no path to publish from here.
func (s *courseService) Submit(ctx context.Context, user models.CurrentUser, form *models.CourseForm) (*models.Course, error) {
	op := s.log.WithOperation(ctx, "create_course", user.ID)

	payload, err := s.buildPayload(ctx, user, "", form)
	if err != nil {
		op.LogResult("", "course", err)
		return nil, err
	}
	published := false
	payload.Status = models.CourseStatusPending
	payload.Published = &published

	course, err := s.repo.CreateCourse(ctx, payload)
	if err != nil {
		op.LogResult("", "course", err)
		return nil, err
	}
	op.LogResult(course.ID, "course", nil)
	op.LogAudit(AuditEventCreate, course.ID, "course", map[string]interface{}{"instructor_id": course.InstructorID})
	s.invalidateCatalog(ctx)

	if err := s.publisher.Publish(ctx, events.NewCourseCreatedEvent(course, user.ID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish course event", "course_id", course.ID, "error", err)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.CourseForm) (*models.Course, error) {
	op := s.log.WithOperation(ctx, "update_course", user.ID)

	payload, err := s.buildPayload(ctx, user, id, form)
	if err != nil {
		op.LogResult(id, "course", err)
		return nil, err
	}

	course, err := s.repo.UpdateCourse(ctx, id, payload)
	err = upstreamError(err, ErrCourseNotFound)
	op.LogResult(id, "course", err)
	if err != nil {
		return nil, err
	}
	op.LogAudit(AuditEventUpdate, id, "course", nil)
	s.invalidateCatalog(ctx)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error {
	op := s.log.WithOperation(ctx, "delete_course", user.ID)

	if !user.Role.CanAuthor() {
		err := NewPermissionError(user.ID.String(), id.String(), "course", "delete", "role cannot author courses")
		op.LogResult(id, "course", err)
		return err
	}
	if !confirmed {
		op.LogResult(id, "course", ErrDeleteUnconfirmed)
		return ErrDeleteUnconfirmed
	}

	err := upstreamError(s.repo.DeleteCourse(ctx, id), ErrCourseNotFound)
	op.LogResult(id, "course", err)
	if err != nil {
		return err
	}
	op.LogAudit(AuditEventDelete, id, "course", nil)
	s.invalidateCatalog(ctx)

	if err := s.publisher.Publish(ctx, events.NewEvent(events.EventCourseDeleted, user.ID, events.CourseDeletedEvent{CourseID: id})); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish course event", "course_id", id, "error", err)
	}
	return nil
}

// invalidateCatalog drops the cached public listing after a course write. A
// failed delete only delays freshness until the TTL expires.
func (s *courseService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate catalog cache", "key", catalogCacheKey, "error", err)
	}
}

func (s *courseService) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	return s.repo.ListInstructors(ctx)
}

// buildPayload validates the form and resolves the instructor. Instructors
// always author as themselves whatever the form says; admins must pick an
// existing instructor.
func (s *courseService) buildPayload(ctx context.Context, user models.CurrentUser, courseID models.ID, form *models.CourseForm) (*backend.CoursePayload, error) {
	action := "create"
	if !courseID.IsZero() {
		action = "update"
	}

	var instructorID models.ID
	switch user.Role {
	case models.RoleInstructor:
		instructorID = user.ID
	case models.RoleAdmin, models.RoleSuperAdmin:
		instructorID = form.InstructorID
	case models.RoleStudent:
		return nil, NewPermissionError(user.ID.String(), courseID.String(), "course", action, "students cannot author courses")
	default:
		return nil, NewPermissionError(user.ID.String(), courseID.String(), "course", action, "unknown role")
	}

	if err := s.validator.ValidateStruct(form); err != nil {
		return nil, err
	}
	price, _ := validator.ParsePrice(form.Price)

	if user.Role != models.RoleInstructor {
		if instructorID.IsZero() {
			return nil, fmt.Errorf("%w: %w", ErrInstructorRequired,
				ValidationErrors{}.Add("instructor_id", "an instructor must be selected", nil))
		}
		if err := s.ensureInstructor(ctx, instructorID); err != nil {
			return nil, err
		}
	}

	return &backend.CoursePayload{
		Title:        form.Title,
		Description:  form.Description,
		Category:     form.Category,
		Price:        price,
		InstructorID: instructorID,
	}, nil
}

func (s *courseService) ensureInstructor(ctx context.Context, id models.ID) error {
	instructors, err := s.repo.ListInstructors(ctx)
	if err != nil {
		return fmt.Errorf("failed to load instructors: %w", err)
	}
	for _, in := range instructors {
		if in.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ErrUnknownInstructor,
		ValidationErrors{}.Add("instructor_id", "selected instructor does not exist", id))
}
