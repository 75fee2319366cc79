package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/cache"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/progress"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/validator"
)

// ServiceManager exposes every workflow the HTTP layer drives.
type ServiceManager interface {
	Catalog() CatalogService
	Course() CourseService
	Module() ModuleService
	Lesson() LessonService
	Progress() ProgressService
	Assignment() AssignmentService
	Submission() SubmissionService
	Quiz() QuizService
	Export() ExportService
}

type ManagerConfig struct {
	CatalogCacheTTL        time.Duration
	UploadProgressInterval time.Duration
	Now                    func() time.Time
}

type serviceManager struct {
	catalog    CatalogService
	course     CourseService
	module     ModuleService
	lesson     LessonService
	progress   ProgressService
	assignment AssignmentService
	submission SubmissionService
	quiz       QuizService
	export     ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	progressStore progress.Store,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	cfg ManagerConfig,
	logger *slog.Logger,
) ServiceManager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cacheService == nil {
		cacheService = cache.NoopCache{}
	}

	catalog := NewCatalogService(repo.Catalog(), cacheService, cfg.CatalogCacheTTL, logger)
	module := NewModuleService(repo.Module(), repo.Lesson(), v, logger)
	quiz := NewQuizService(repo.Quiz(), repo.QuizDraft(), v, publisher, logger)

	return &serviceManager{
		catalog:    catalog,
		course:     NewCourseService(repo.Course(), v, publisher, cacheService, logger),
		module:     module,
		lesson:     NewLessonService(repo.Lesson(), v, publisher, cfg.UploadProgressInterval, logger),
		progress:   NewProgressService(module, progressStore, publisher, logger, cfg.Now),
		assignment: NewAssignmentService(repo.Assignment(), repo.Course(), v, publisher, logger),
		submission: NewSubmissionService(repo.Submission(), repo.Assignment(), v, publisher, logger),
		quiz:       quiz,
		export:     NewExportService(catalog, quiz, logger),
	}
}

func (sm *serviceManager) Catalog() CatalogService       { return sm.catalog }
func (sm *serviceManager) Course() CourseService         { return sm.course }
func (sm *serviceManager) Module() ModuleService         { return sm.module }
func (sm *serviceManager) Lesson() LessonService         { return sm.lesson }
func (sm *serviceManager) Progress() ProgressService     { return sm.progress }
func (sm *serviceManager) Assignment() AssignmentService { return sm.assignment }
func (sm *serviceManager) Submission() SubmissionService { return sm.submission }
func (sm *serviceManager) Quiz() QuizService             { return sm.quiz }
func (sm *serviceManager) Export() ExportService         { return sm.export }
