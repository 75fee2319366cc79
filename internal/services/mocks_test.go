package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/upload"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCourseRecords(ctx context.Context) ([]backend.CourseRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]backend.CourseRecord)
	return records, args.Error(1)
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) CreateCourse(ctx context.Context, payload *backend.CoursePayload) (*models.Course, error) {
	args := m.Called(ctx, payload)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) UpdateCourse(ctx context.Context, id models.ID, payload *backend.CoursePayload) (*models.Course, error) {
	args := m.Called(ctx, id, payload)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepository) DeleteCourse(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	args := m.Called(ctx)
	instructors, _ := args.Get(0).([]models.Instructor)
	return instructors, args.Error(1)
}

func (m *MockCourseRepository) ListEnrolledStudents(ctx context.Context, courseID models.ID) ([]models.Student, error) {
	args := m.Called(ctx, courseID)
	students, _ := args.Get(0).([]models.Student)
	return students, args.Error(1)
}

// MockModuleRepository is a mock implementation of ModuleRepository
type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) ListModules(ctx context.Context, courseID models.ID) ([]models.Module, error) {
	args := m.Called(ctx, courseID)
	modules, _ := args.Get(0).([]models.Module)
	return modules, args.Error(1)
}

func (m *MockModuleRepository) CreateModule(ctx context.Context, courseID models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	args := m.Called(ctx, courseID, draft)
	module, _ := args.Get(0).(*models.Module)
	return module, args.Error(1)
}

func (m *MockModuleRepository) UpdateModule(ctx context.Context, moduleID models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	args := m.Called(ctx, moduleID, draft)
	module, _ := args.Get(0).(*models.Module)
	return module, args.Error(1)
}

func (m *MockModuleRepository) DeleteModule(ctx context.Context, moduleID models.ID) error {
	args := m.Called(ctx, moduleID)
	return args.Error(0)
}

// MockLessonRepository is a mock implementation of LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) ListLessons(ctx context.Context, moduleID models.ID) ([]models.Lesson, error) {
	args := m.Called(ctx, moduleID)
	lessons, _ := args.Get(0).([]models.Lesson)
	return lessons, args.Error(1)
}

func (m *MockLessonRepository) CreateLesson(ctx context.Context, moduleID models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	args := m.Called(ctx, moduleID, draft)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockLessonRepository) UpdateLesson(ctx context.Context, lessonID models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID, draft)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockLessonRepository) PatchLesson(ctx context.Context, lessonID models.ID, fields map[string]interface{}) (*models.Lesson, error) {
	args := m.Called(ctx, lessonID, fields)
	lesson, _ := args.Get(0).(*models.Lesson)
	return lesson, args.Error(1)
}

func (m *MockLessonRepository) DeleteLesson(ctx context.Context, lessonID models.ID) error {
	args := m.Called(ctx, lessonID)
	return args.Error(0)
}

func (m *MockLessonRepository) UploadLessonFile(ctx context.Context, kind backend.UploadKind, lessonID models.ID, file *models.FileUpload, progress func(upload.Progress)) (string, error) {
	args := m.Called(ctx, kind, lessonID, file, progress)
	if progress != nil {
		progress(upload.Progress{Loaded: file.Size, Total: file.Size})
	}
	return args.String(0), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ListAssignments(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	args := m.Called(ctx, courseID)
	assignments, _ := args.Get(0).([]models.Assignment)
	return assignments, args.Error(1)
}

func (m *MockAssignmentRepository) GetAssignment(ctx context.Context, id models.ID) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) CreateAssignment(ctx context.Context, payload *backend.AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error) {
	args := m.Called(ctx, payload, attachment)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) UpdateAssignment(ctx context.Context, id models.ID, payload *backend.AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error) {
	args := m.Called(ctx, id, payload, attachment)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

func (m *MockAssignmentRepository) SetAssignmentStatus(ctx context.Context, id models.ID, status models.AssignmentStatus) (*models.Assignment, error) {
	args := m.Called(ctx, id, status)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) SubmitAssignment(ctx context.Context, assignmentID models.ID, comments string, file *models.FileUpload) (*models.Submission, error) {
	args := m.Called(ctx, assignmentID, comments, file)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionRepository) ListSubmissions(ctx context.Context, assignmentID models.ID) ([]models.Submission, error) {
	args := m.Called(ctx, assignmentID)
	submissions, _ := args.Get(0).([]models.Submission)
	return submissions, args.Error(1)
}

func (m *MockSubmissionRepository) GetSubmission(ctx context.Context, id models.ID) (*models.Submission, error) {
	args := m.Called(ctx, id)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *MockSubmissionRepository) GradeSubmission(ctx context.Context, id models.ID, review *models.Review) (*models.Submission, error) {
	args := m.Called(ctx, id, review)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context, courseID models.ID) ([]models.Quiz, error) {
	args := m.Called(ctx, courseID)
	quizzes, _ := args.Get(0).([]models.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizRepository) GetQuiz(ctx context.Context, id models.ID) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizRepository) CreateQuiz(ctx context.Context, payload *backend.QuizPayload) (*models.Quiz, error) {
	args := m.Called(ctx, payload)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizRepository) UpdateQuiz(ctx context.Context, id models.ID, payload *backend.QuizPayload) (*models.Quiz, error) {
	args := m.Called(ctx, id, payload)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizRepository) QuizResults(ctx context.Context, id models.ID) ([]models.QuizResult, error) {
	args := m.Called(ctx, id)
	results, _ := args.Get(0).([]models.QuizResult)
	return results, args.Error(1)
}
