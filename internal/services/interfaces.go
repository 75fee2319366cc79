package services

import (
	"context"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/upload"
)

// CatalogService never fails: upstream errors degrade to fallback data.
type CatalogService interface {
	ListCourses(ctx context.Context) []models.CatalogCourse
	SearchCourses(ctx context.Context, term, category, level string) []models.CatalogCourse
	GetCourseStats(ctx context.Context) models.CourseStats
	GetCourseCategories(ctx context.Context) []string
	GetCourseLevels(ctx context.Context) []string
}

type CourseService interface {
	Submit(ctx context.Context, user models.CurrentUser, form *models.CourseForm) (*models.Course, error)
	Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.CourseForm) (*models.Course, error)
	Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error
	ListInstructors(ctx context.Context) ([]models.Instructor, error)
}

type ModuleService interface {
	List(ctx context.Context, courseID models.ID) ([]models.Module, error)
	Create(ctx context.Context, user models.CurrentUser, courseID models.ID, draft *models.ModuleDraft) (*models.Module, error)
	Update(ctx context.Context, user models.CurrentUser, id models.ID, draft *models.ModuleDraft) (*models.Module, error)
	Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) (*CascadeReport, error)
	Tree(ctx context.Context, courseID models.ID) ([]models.Module, error)
}

type LessonService interface {
	List(ctx context.Context, moduleID models.ID) ([]models.Lesson, error)
	Create(ctx context.Context, user models.CurrentUser, moduleID models.ID, draft *models.LessonDraft) (*models.Lesson, error)
	Update(ctx context.Context, user models.CurrentUser, id models.ID, draft *models.LessonDraft) (*models.Lesson, error)
	Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error
	UploadVideo(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error)
	UploadPDF(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error)
}

type ProgressService interface {
	Playlist(ctx context.Context, courseID models.ID) ([]models.Lesson, error)
	Get(ctx context.Context, user models.CurrentUser, lessonID models.ID) (*models.LessonProgress, error)
	Record(ctx context.Context, user models.CurrentUser, lessonID models.ID, currentTime, duration float64) (*models.LessonProgress, error)
}

type AssignmentService interface {
	List(ctx context.Context, courseID models.ID) ([]models.Assignment, error)
	Create(ctx context.Context, user models.CurrentUser, form *models.AssignmentForm) (*models.Assignment, error)
	Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.AssignmentForm) (*models.Assignment, error)
	SetStatus(ctx context.Context, user models.CurrentUser, id models.ID, status models.AssignmentStatus) (*models.Assignment, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, student models.CurrentUser, assignmentID models.ID, file *models.FileUpload, comments string) (*models.Submission, error)
	ListForAssignment(ctx context.Context, user models.CurrentUser, assignmentID models.ID) ([]models.Submission, error)
	Review(ctx context.Context, reviewer models.CurrentUser, submissionID models.ID, review *models.Review) (*models.Submission, error)
}

type QuizService interface {
	List(ctx context.Context, courseID models.ID) ([]models.Quiz, error)
	Get(ctx context.Context, id models.ID) (*models.Quiz, error)
	Create(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.Quiz, error)
	Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.QuizForm) (*models.Quiz, error)
	Results(ctx context.Context, id models.ID) ([]models.QuizResult, error)
	ChangeType(form *models.QuizForm, newType models.QuizType, confirmed bool) error
	SanitizeQuestions(quizType models.QuizType, questions []models.Question) ([]models.Question, error)
	NewQuestion() models.Question

	SaveDraft(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.QuizDraft, error)
	GetDraft(ctx context.Context, user models.CurrentUser, id string) (*models.QuizForm, error)
	UpdateDraft(ctx context.Context, user models.CurrentUser, id string, form *models.QuizForm) (*models.QuizDraft, error)
}

type ExportService interface {
	ExportCatalog(ctx context.Context) ([]byte, error)
	ExportQuizResults(ctx context.Context, quizID models.ID) ([]byte, error)
}
