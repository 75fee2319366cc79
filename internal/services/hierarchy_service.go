package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/upload"
	"github.com/SAP-F-2025/course-studio/internal/validator"
)

// hierarchyOps binds the generic list manager to one level of the
// course > module > lesson tree.
type hierarchyOps[T any, D any] struct {
	resource       string
	parentNotFound error
	notFound       error
	list           func(ctx context.Context, parentID models.ID) ([]T, error)
	create         func(ctx context.Context, parentID models.ID, draft *D) (*T, error)
	update         func(ctx context.Context, id models.ID, draft *D) (*T, error)
	remove         func(ctx context.Context, id models.ID) error
	order          func(draft *D) *int
	id             func(item *T) models.ID
}

type hierarchyManager[T any, D any] struct {
	ops       hierarchyOps[T, D]
	validator *validator.Validator
	log       *ServiceLogger
}

// List returns items in backend order; it never re-sorts.
func (m *hierarchyManager[T, D]) List(ctx context.Context, parentID models.ID) ([]T, error) {
	items, err := m.ops.list(ctx, parentID)
	if err != nil {
		return nil, upstreamError(err, m.ops.parentNotFound)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create defaults a missing order to count+1. Duplicate orders are allowed.
func (m *hierarchyManager[T, D]) Create(ctx context.Context, user models.CurrentUser, parentID models.ID, draft *D) (*T, error) {
	op := m.log.WithOperation(ctx, "create_"+m.ops.resource, user.ID)

	if err := m.authorize(user, "", "create"); err != nil {
		op.LogResult("", m.ops.resource, err)
		return nil, err
	}
	if err := m.validator.ValidateStruct(draft); err != nil {
		op.LogResult("", m.ops.resource, err)
		return nil, err
	}

	if order := m.ops.order(draft); *order <= 0 {
		siblings, err := m.List(ctx, parentID)
		if err != nil {
			op.LogResult("", m.ops.resource, err)
			return nil, err
		}
		*order = len(siblings) + 1
	}

	item, err := m.ops.create(ctx, parentID, draft)
	err = upstreamError(err, m.ops.parentNotFound)
	if err != nil {
		op.LogResult("", m.ops.resource, err)
		return nil, err
	}
	op.LogResult(m.ops.id(item), m.ops.resource, nil)
	return item, nil
}

func (m *hierarchyManager[T, D]) Update(ctx context.Context, user models.CurrentUser, id models.ID, draft *D) (*T, error) {
	op := m.log.WithOperation(ctx, "update_"+m.ops.resource, user.ID)

	if err := m.authorize(user, id, "update"); err != nil {
		op.LogResult(id, m.ops.resource, err)
		return nil, err
	}
	if err := m.validator.ValidateStruct(draft); err != nil {
		op.LogResult(id, m.ops.resource, err)
		return nil, err
	}

	item, err := m.ops.update(ctx, id, draft)
	err = upstreamError(err, m.ops.notFound)
	op.LogResult(id, m.ops.resource, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (m *hierarchyManager[T, D]) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error {
	op := m.log.WithOperation(ctx, "delete_"+m.ops.resource, user.ID)

	if err := m.authorize(user, id, "delete"); err != nil {
		op.LogResult(id, m.ops.resource, err)
		return err
	}
	if !confirmed {
		op.LogResult(id, m.ops.resource, ErrDeleteUnconfirmed)
		return ErrDeleteUnconfirmed
	}

	err := upstreamError(m.ops.remove(ctx, id), m.ops.notFound)
	op.LogResult(id, m.ops.resource, err)
	if err == nil {
		op.LogAudit(AuditEventDelete, id, m.ops.resource, nil)
	}
	return err
}

func (m *hierarchyManager[T, D]) authorize(user models.CurrentUser, id models.ID, action string) error {
	if user.Role.CanAuthor() {
		return nil
	}
	return NewPermissionError(user.ID.String(), id.String(), m.ops.resource, action, "role cannot author course content")
}

// ===== MODULES =====

// CascadeReport tells the caller what a module deletion took with it.
type CascadeReport struct {
	ModuleID       models.ID `json:"module_id"`
	LessonsRemoved int       `json:"lessons_removed"`
}

type moduleService struct {
	*hierarchyManager[models.Module, models.ModuleDraft]
	lessons repositories.LessonRepository
	logger  *slog.Logger
}

func NewModuleService(repo repositories.ModuleRepository, lessons repositories.LessonRepository, v *validator.Validator, logger *slog.Logger) ModuleService {
	return &moduleService{
		hierarchyManager: &hierarchyManager[models.Module, models.ModuleDraft]{
			ops: hierarchyOps[models.Module, models.ModuleDraft]{
				resource:       "module",
				parentNotFound: ErrCourseNotFound,
				notFound:       ErrModuleNotFound,
				list:           repo.ListModules,
				create:         repo.CreateModule,
				update:         repo.UpdateModule,
				remove:         repo.DeleteModule,
				order:          func(d *models.ModuleDraft) *int { return &d.Order },
				id:             func(m *models.Module) models.ID { return m.ID },
			},
			validator: v,
			log:       NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "ModuleService"}),
		},
		lessons: lessons,
		logger:  logger,
	}
}

// Delete removes a module and, on the backend, all of its lessons. The
// report counts the lessons that existed just before deletion.
func (s *moduleService) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) (*CascadeReport, error) {
	report := &CascadeReport{ModuleID: id}
	if confirmed && user.Role.CanAuthor() {
		lessons, err := s.lessons.ListLessons(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "Could not count lessons before module delete", "module_id", id, "error", err)
		}
		report.LessonsRemoved = len(lessons)
	}
	if err := s.hierarchyManager.Delete(ctx, user, id, confirmed); err != nil {
		return nil, err
	}
	return report, nil
}

// Tree returns a course's modules with their lessons filled in.
func (s *moduleService) Tree(ctx context.Context, courseID models.ID) ([]models.Module, error) {
	modules, err := s.List(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		if len(modules[i].Lessons) > 0 {
			continue
		}
		lessons, err := s.lessons.ListLessons(ctx, modules[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lessons for module %s: %w", modules[i].ID, err)
		}
		modules[i].Lessons = lessons
	}
	return modules, nil
}

// ===== LESSONS =====

type lessonService struct {
	*hierarchyManager[models.Lesson, models.LessonDraft]
	repo           repositories.LessonRepository
	publisher      events.EventPublisher
	logger         *slog.Logger
	uploadInterval time.Duration
}

func NewLessonService(repo repositories.LessonRepository, v *validator.Validator, publisher events.EventPublisher, uploadInterval time.Duration, logger *slog.Logger) LessonService {
	if uploadInterval <= 0 {
		uploadInterval = upload.DefaultInterval
	}
	return &lessonService{
		hierarchyManager: &hierarchyManager[models.Lesson, models.LessonDraft]{
			ops: hierarchyOps[models.Lesson, models.LessonDraft]{
				resource:       "lesson",
				parentNotFound: ErrModuleNotFound,
				notFound:       ErrLessonNotFound,
				list:           repo.ListLessons,
				create:         repo.CreateLesson,
				update:         repo.UpdateLesson,
				remove:         repo.DeleteLesson,
				order:          func(d *models.LessonDraft) *int { return &d.Order },
				id:             func(l *models.Lesson) models.ID { return l.ID },
			},
			validator: v,
			log:       NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "LessonService"}),
		},
		repo:           repo,
		publisher:      publisher,
		logger:         logger,
		uploadInterval: uploadInterval,
	}
}

func (s *lessonService) UploadVideo(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error) {
	return s.attach(ctx, user, lessonID, backend.UploadVideo, "video_url", file, onProgress, s.validator.Upload().ValidateVideo)
}

func (s *lessonService) UploadPDF(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error) {
	return s.attach(ctx, user, lessonID, backend.UploadPDF, "pdf_url", file, onProgress, s.validator.Upload().ValidatePDF)
}

// attach validates the file before any network call, streams it with
// throttled progress, then points the lesson at the stored file.
func (s *lessonService) attach(
	ctx context.Context,
	user models.CurrentUser,
	lessonID models.ID,
	kind backend.UploadKind,
	field string,
	file *models.FileUpload,
	onProgress func(upload.Progress),
	check func(*models.FileUpload) ValidationErrors,
) (*models.Lesson, error) {
	op := s.log.WithOperation(ctx, "upload_"+string(kind), user.ID)

	if err := s.authorize(user, lessonID, "upload"); err != nil {
		op.LogResult(lessonID, "lesson", err)
		return nil, err
	}
	if verrs := check(file); len(verrs) > 0 {
		err := fmt.Errorf("%w: %w", ErrUploadRejected, verrs)
		op.LogResult(lessonID, "lesson", err)
		return nil, err
	}

	var report func(upload.Progress)
	var throttle *upload.Throttle
	if onProgress != nil {
		throttle = upload.NewThrottle(s.uploadInterval, onProgress)
		report = func(p upload.Progress) { throttle.Report(p) }
	}

	location, err := s.repo.UploadLessonFile(ctx, kind, lessonID, file, report)
	if throttle != nil {
		throttle.Flush()
	}
	if err != nil {
		err = upstreamError(err, ErrLessonNotFound)
		op.LogResult(lessonID, "lesson", err)
		return nil, err
	}

	lesson, err := s.repo.PatchLesson(ctx, lessonID, map[string]interface{}{field: location})
	err = upstreamError(err, ErrLessonNotFound)
	op.LogResult(lessonID, "lesson", err)
	if err != nil {
		return nil, err
	}

	event := events.NewEvent(events.EventLessonFileUploaded, user.ID, events.LessonFileUploadedEvent{
		LessonID: lessonID,
		Kind:     string(kind),
		URL:      location,
		Size:     file.Size,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish upload event", "lesson_id", lessonID, "error", err)
	}
	return lesson, nil
}
