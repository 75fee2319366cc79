package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/upload"
)

// Remote repositories are served by the upstream REST backend. Local ones
// (quiz drafts) live in the studio's own database.

type CatalogRepository interface {
	ListCourseRecords(ctx context.Context) ([]backend.CourseRecord, error)
}

type CourseRepository interface {
	CreateCourse(ctx context.Context, payload *backend.CoursePayload) (*models.Course, error)
	UpdateCourse(ctx context.Context, id models.ID, payload *backend.CoursePayload) (*models.Course, error)
	DeleteCourse(ctx context.Context, id models.ID) error
	ListInstructors(ctx context.Context) ([]models.Instructor, error)
	ListEnrolledStudents(ctx context.Context, courseID models.ID) ([]models.Student, error)
}

type ModuleRepository interface {
	ListModules(ctx context.Context, courseID models.ID) ([]models.Module, error)
	CreateModule(ctx context.Context, courseID models.ID, draft *models.ModuleDraft) (*models.Module, error)
	UpdateModule(ctx context.Context, moduleID models.ID, draft *models.ModuleDraft) (*models.Module, error)
	DeleteModule(ctx context.Context, moduleID models.ID) error
}

type LessonRepository interface {
	ListLessons(ctx context.Context, moduleID models.ID) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, moduleID models.ID, draft *models.LessonDraft) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID models.ID, draft *models.LessonDraft) (*models.Lesson, error)
	PatchLesson(ctx context.Context, lessonID models.ID, fields map[string]interface{}) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID models.ID) error
	UploadLessonFile(ctx context.Context, kind backend.UploadKind, lessonID models.ID, file *models.FileUpload, progress func(upload.Progress)) (string, error)
}

type AssignmentRepository interface {
	ListAssignments(ctx context.Context, courseID models.ID) ([]models.Assignment, error)
	GetAssignment(ctx context.Context, id models.ID) (*models.Assignment, error)
	CreateAssignment(ctx context.Context, payload *backend.AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, id models.ID, payload *backend.AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error)
	SetAssignmentStatus(ctx context.Context, id models.ID, status models.AssignmentStatus) (*models.Assignment, error)
}

type SubmissionRepository interface {
	SubmitAssignment(ctx context.Context, assignmentID models.ID, comments string, file *models.FileUpload) (*models.Submission, error)
	ListSubmissions(ctx context.Context, assignmentID models.ID) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id models.ID) (*models.Submission, error)
	GradeSubmission(ctx context.Context, id models.ID, review *models.Review) (*models.Submission, error)
}

type QuizRepository interface {
	ListQuizzes(ctx context.Context, courseID models.ID) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, id models.ID) (*models.Quiz, error)
	CreateQuiz(ctx context.Context, payload *backend.QuizPayload) (*models.Quiz, error)
	UpdateQuiz(ctx context.Context, id models.ID, payload *backend.QuizPayload) (*models.Quiz, error)
	QuizResults(ctx context.Context, id models.ID) ([]models.QuizResult, error)
}

type QuizDraftRepository interface {
	Create(ctx context.Context, draft *models.QuizDraft) error
	GetByID(ctx context.Context, id string) (*models.QuizDraft, error)
	Update(ctx context.Context, draft *models.QuizDraft) error
	ListByOwner(ctx context.Context, ownerID models.ID) ([]*models.QuizDraft, error)
	Delete(ctx context.Context, id string) error
}

// Repository groups every repository the services depend on
type Repository interface {
	Catalog() CatalogRepository
	Course() CourseRepository
	Module() ModuleRepository
	Lesson() LessonRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository
	Quiz() QuizRepository
	QuizDraft() QuizDraftRepository
}

type repository struct {
	remote *backend.Client
	drafts QuizDraftRepository
}

// NewRepository serves every remote repository from the backend client.
func NewRepository(remote *backend.Client, drafts QuizDraftRepository) Repository {
	return &repository{remote: remote, drafts: drafts}
}

func (r *repository) Catalog() CatalogRepository       { return r.remote }
func (r *repository) Course() CourseRepository         { return r.remote }
func (r *repository) Module() ModuleRepository         { return r.remote }
func (r *repository) Lesson() LessonRepository         { return r.remote }
func (r *repository) Assignment() AssignmentRepository { return r.remote }
func (r *repository) Submission() SubmissionRepository { return r.remote }
func (r *repository) Quiz() QuizRepository             { return r.remote }
func (r *repository) QuizDraft() QuizDraftRepository   { return r.drafts }
