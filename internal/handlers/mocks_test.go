package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/upload"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func discardLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signToken(t *testing.T, subject, name, role string) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: name,
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

type fakeServiceManager struct {
	catalog    services.CatalogService
	course     services.CourseService
	module     services.ModuleService
	lesson     services.LessonService
	progress   services.ProgressService
	assignment services.AssignmentService
	submission services.SubmissionService
	quiz       services.QuizService
	export     services.ExportService
}

func (f *fakeServiceManager) Catalog() services.CatalogService       { return f.catalog }
func (f *fakeServiceManager) Course() services.CourseService         { return f.course }
func (f *fakeServiceManager) Module() services.ModuleService         { return f.module }
func (f *fakeServiceManager) Lesson() services.LessonService         { return f.lesson }
func (f *fakeServiceManager) Progress() services.ProgressService     { return f.progress }
func (f *fakeServiceManager) Assignment() services.AssignmentService { return f.assignment }
func (f *fakeServiceManager) Submission() services.SubmissionService { return f.submission }
func (f *fakeServiceManager) Quiz() services.QuizService             { return f.quiz }
func (f *fakeServiceManager) Export() services.ExportService         { return f.export }

func newTestRouter(sm services.ServiceManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandlerManager(sm, discardLogger(), testSecret).SetupRoutes(router)
	return router
}

// ===== MOCK SERVICES =====

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCourses(ctx context.Context) []models.CatalogCourse {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]models.CatalogCourse)
	return courses
}

func (m *MockCatalogService) SearchCourses(ctx context.Context, term, category, level string) []models.CatalogCourse {
	args := m.Called(ctx, term, category, level)
	courses, _ := args.Get(0).([]models.CatalogCourse)
	return courses
}

func (m *MockCatalogService) GetCourseStats(ctx context.Context) models.CourseStats {
	args := m.Called(ctx)
	return args.Get(0).(models.CourseStats)
}

func (m *MockCatalogService) GetCourseCategories(ctx context.Context) []string {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]string)
	return out
}

func (m *MockCatalogService) GetCourseLevels(ctx context.Context) []string {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]string)
	return out
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) Submit(ctx context.Context, user models.CurrentUser, form *models.CourseForm) (*models.Course, error) {
	args := m.Called(ctx, user, form)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.CourseForm) (*models.Course, error) {
	args := m.Called(ctx, user, id, form)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *MockCourseService) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error {
	args := m.Called(ctx, user, id, confirmed)
	return args.Error(0)
}

func (m *MockCourseService) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.Instructor)
	return out, args.Error(1)
}

type MockModuleService struct {
	mock.Mock
}

func (m *MockModuleService) List(ctx context.Context, courseID models.ID) ([]models.Module, error) {
	args := m.Called(ctx, courseID)
	out, _ := args.Get(0).([]models.Module)
	return out, args.Error(1)
}

func (m *MockModuleService) Create(ctx context.Context, user models.CurrentUser, courseID models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	args := m.Called(ctx, user, courseID, draft)
	out, _ := args.Get(0).(*models.Module)
	return out, args.Error(1)
}

func (m *MockModuleService) Update(ctx context.Context, user models.CurrentUser, id models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	args := m.Called(ctx, user, id, draft)
	out, _ := args.Get(0).(*models.Module)
	return out, args.Error(1)
}

func (m *MockModuleService) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) (*services.CascadeReport, error) {
	args := m.Called(ctx, user, id, confirmed)
	out, _ := args.Get(0).(*services.CascadeReport)
	return out, args.Error(1)
}

func (m *MockModuleService) Tree(ctx context.Context, courseID models.ID) ([]models.Module, error) {
	args := m.Called(ctx, courseID)
	out, _ := args.Get(0).([]models.Module)
	return out, args.Error(1)
}

type MockLessonService struct {
	mock.Mock
}

func (m *MockLessonService) List(ctx context.Context, moduleID models.ID) ([]models.Lesson, error) {
	args := m.Called(ctx, moduleID)
	out, _ := args.Get(0).([]models.Lesson)
	return out, args.Error(1)
}

func (m *MockLessonService) Create(ctx context.Context, user models.CurrentUser, moduleID models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	args := m.Called(ctx, user, moduleID, draft)
	out, _ := args.Get(0).(*models.Lesson)
	return out, args.Error(1)
}

func (m *MockLessonService) Update(ctx context.Context, user models.CurrentUser, id models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	args := m.Called(ctx, user, id, draft)
	out, _ := args.Get(0).(*models.Lesson)
	return out, args.Error(1)
}

func (m *MockLessonService) Delete(ctx context.Context, user models.CurrentUser, id models.ID, confirmed bool) error {
	args := m.Called(ctx, user, id, confirmed)
	return args.Error(0)
}

func (m *MockLessonService) UploadVideo(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error) {
	args := m.Called(ctx, user, lessonID, file)
	out, _ := args.Get(0).(*models.Lesson)
	return out, args.Error(1)
}

func (m *MockLessonService) UploadPDF(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error) {
	args := m.Called(ctx, user, lessonID, file)
	out, _ := args.Get(0).(*models.Lesson)
	return out, args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Playlist(ctx context.Context, courseID models.ID) ([]models.Lesson, error) {
	args := m.Called(ctx, courseID)
	out, _ := args.Get(0).([]models.Lesson)
	return out, args.Error(1)
}

func (m *MockProgressService) Get(ctx context.Context, user models.CurrentUser, lessonID models.ID) (*models.LessonProgress, error) {
	args := m.Called(ctx, user, lessonID)
	out, _ := args.Get(0).(*models.LessonProgress)
	return out, args.Error(1)
}

func (m *MockProgressService) Record(ctx context.Context, user models.CurrentUser, lessonID models.ID, currentTime, duration float64) (*models.LessonProgress, error) {
	args := m.Called(ctx, user, lessonID, currentTime, duration)
	out, _ := args.Get(0).(*models.LessonProgress)
	return out, args.Error(1)
}

type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) List(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	args := m.Called(ctx, courseID)
	out, _ := args.Get(0).([]models.Assignment)
	return out, args.Error(1)
}

func (m *MockAssignmentService) Create(ctx context.Context, user models.CurrentUser, form *models.AssignmentForm) (*models.Assignment, error) {
	args := m.Called(ctx, user, form)
	out, _ := args.Get(0).(*models.Assignment)
	return out, args.Error(1)
}

func (m *MockAssignmentService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.AssignmentForm) (*models.Assignment, error) {
	args := m.Called(ctx, user, id, form)
	out, _ := args.Get(0).(*models.Assignment)
	return out, args.Error(1)
}

func (m *MockAssignmentService) SetStatus(ctx context.Context, user models.CurrentUser, id models.ID, status models.AssignmentStatus) (*models.Assignment, error) {
	args := m.Called(ctx, user, id, status)
	out, _ := args.Get(0).(*models.Assignment)
	return out, args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, student models.CurrentUser, assignmentID models.ID, file *models.FileUpload, comments string) (*models.Submission, error) {
	args := m.Called(ctx, student, assignmentID, file, comments)
	out, _ := args.Get(0).(*models.Submission)
	return out, args.Error(1)
}

func (m *MockSubmissionService) ListForAssignment(ctx context.Context, user models.CurrentUser, assignmentID models.ID) ([]models.Submission, error) {
	args := m.Called(ctx, user, assignmentID)
	out, _ := args.Get(0).([]models.Submission)
	return out, args.Error(1)
}

func (m *MockSubmissionService) Review(ctx context.Context, reviewer models.CurrentUser, submissionID models.ID, review *models.Review) (*models.Submission, error) {
	args := m.Called(ctx, reviewer, submissionID, review)
	out, _ := args.Get(0).(*models.Submission)
	return out, args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) List(ctx context.Context, courseID models.ID) ([]models.Quiz, error) {
	args := m.Called(ctx, courseID)
	out, _ := args.Get(0).([]models.Quiz)
	return out, args.Error(1)
}

func (m *MockQuizService) Get(ctx context.Context, id models.ID) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Quiz)
	return out, args.Error(1)
}

func (m *MockQuizService) Create(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.Quiz, error) {
	args := m.Called(ctx, user, form)
	out, _ := args.Get(0).(*models.Quiz)
	return out, args.Error(1)
}

func (m *MockQuizService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.QuizForm) (*models.Quiz, error) {
	args := m.Called(ctx, user, id, form)
	out, _ := args.Get(0).(*models.Quiz)
	return out, args.Error(1)
}

func (m *MockQuizService) Results(ctx context.Context, id models.ID) ([]models.QuizResult, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]models.QuizResult)
	return out, args.Error(1)
}

func (m *MockQuizService) ChangeType(form *models.QuizForm, newType models.QuizType, confirmed bool) error {
	args := m.Called(form, newType, confirmed)
	return args.Error(0)
}

func (m *MockQuizService) SanitizeQuestions(quizType models.QuizType, questions []models.Question) ([]models.Question, error) {
	args := m.Called(quizType, questions)
	out, _ := args.Get(0).([]models.Question)
	return out, args.Error(1)
}

func (m *MockQuizService) NewQuestion() models.Question {
	args := m.Called()
	return args.Get(0).(models.Question)
}

func (m *MockQuizService) SaveDraft(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.QuizDraft, error) {
	args := m.Called(ctx, user, form)
	out, _ := args.Get(0).(*models.QuizDraft)
	return out, args.Error(1)
}

func (m *MockQuizService) GetDraft(ctx context.Context, user models.CurrentUser, id string) (*models.QuizForm, error) {
	args := m.Called(ctx, user, id)
	out, _ := args.Get(0).(*models.QuizForm)
	return out, args.Error(1)
}

func (m *MockQuizService) UpdateDraft(ctx context.Context, user models.CurrentUser, id string, form *models.QuizForm) (*models.QuizDraft, error) {
	args := m.Called(ctx, user, id, form)
	out, _ := args.Get(0).(*models.QuizDraft)
	return out, args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportCatalog(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockExportService) ExportQuizResults(ctx context.Context, quizID models.ID) ([]byte, error) {
	args := m.Called(ctx, quizID)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}
