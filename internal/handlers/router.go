package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	catalogHandler    *CatalogHandler
	courseHandler     *CourseHandler
	hierarchyHandler  *HierarchyHandler
	progressHandler   *ProgressHandler
	assignmentHandler *AssignmentHandler
	quizHandler       *QuizHandler

	logger    utils.Logger
	jwtSecret []byte
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret []byte,
) *HandlerManager {
	return &HandlerManager{
		catalogHandler:    NewCatalogHandler(serviceManager.Catalog(), serviceManager.Export(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		hierarchyHandler:  NewHierarchyHandler(serviceManager.Module(), serviceManager.Lesson(), logger),
		progressHandler:   NewProgressHandler(serviceManager.Progress(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), serviceManager.Submission(), logger),
		quizHandler:       NewQuizHandler(serviceManager.Quiz(), serviceManager.Export(), logger),
		logger:            logger,
		jwtSecret:         jwtSecret,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")

	// Catalog routes are public
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/courses", hm.catalogHandler.ListCourses)
		catalog.GET("/search", hm.catalogHandler.SearchCourses)
		catalog.GET("/stats", hm.catalogHandler.GetStats)
		catalog.GET("/categories", hm.catalogHandler.GetCategories)
		catalog.GET("/levels", hm.catalogHandler.GetLevels)
		catalog.GET("/export", hm.catalogHandler.ExportCatalog)
	}

	api := v1.Group("", AuthMiddleware(hm.jwtSecret, hm.logger))

	api.GET("/instructors", hm.courseHandler.ListInstructors)

	courses := api.Group("/courses")
	{
		courses.POST("", hm.courseHandler.CreateCourse)
		courses.PUT("/:id", hm.courseHandler.UpdateCourse)
		courses.DELETE("/:id", hm.courseHandler.DeleteCourse)

		courses.GET("/:id/modules", hm.hierarchyHandler.ListModules)
		courses.POST("/:id/modules", hm.hierarchyHandler.CreateModule)
		courses.GET("/:id/playlist", hm.progressHandler.GetPlaylist)
		courses.GET("/:id/assignments", hm.assignmentHandler.ListAssignments)
		courses.POST("/:id/assignments", hm.assignmentHandler.CreateAssignment)
		courses.GET("/:id/quizzes", hm.quizHandler.ListQuizzes)
	}

	modules := api.Group("/modules")
	{
		modules.PUT("/:id", hm.hierarchyHandler.UpdateModule)
		modules.DELETE("/:id", hm.hierarchyHandler.DeleteModule)
		modules.GET("/:id/lessons", hm.hierarchyHandler.ListLessons)
		modules.POST("/:id/lessons", hm.hierarchyHandler.CreateLesson)
	}

	lessons := api.Group("/lessons")
	{
		lessons.PUT("/:id", hm.hierarchyHandler.UpdateLesson)
		lessons.DELETE("/:id", hm.hierarchyHandler.DeleteLesson)
		lessons.POST("/:id/video", hm.hierarchyHandler.UploadVideo)
		lessons.POST("/:id/pdf", hm.hierarchyHandler.UploadPDF)
		lessons.GET("/:id/progress", hm.progressHandler.GetProgress)
		lessons.PUT("/:id/progress", hm.progressHandler.RecordProgress)
	}

	assignments := api.Group("/assignments")
	{
		assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
		assignments.PUT("/:id/status", hm.assignmentHandler.UpdateStatus)
		assignments.POST("/:id/submissions", hm.assignmentHandler.SubmitAssignment)
		assignments.GET("/:id/submissions", hm.assignmentHandler.ListSubmissions)
	}

	api.PUT("/submissions/:id/review", hm.assignmentHandler.ReviewSubmission)

	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", hm.quizHandler.CreateQuiz)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
		quizzes.GET("/:id/results", hm.quizHandler.GetResults)
		quizzes.GET("/:id/results/export", hm.quizHandler.ExportResults)
	}

	drafts := api.Group("/quiz-drafts")
	{
		drafts.POST("", hm.quizHandler.SaveDraft)
		drafts.GET("/:id", hm.quizHandler.GetDraft)
		drafts.PUT("/:id", hm.quizHandler.UpdateDraft)
		drafts.PUT("/:id/type", hm.quizHandler.ChangeDraftType)
		drafts.POST("/:id/questions", hm.quizHandler.AddDraftQuestion)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "course-studio",
	})
}
