package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(quizService services.QuizService, exportService services.ExportService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
	}
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	quizzes, err := h.quizService.List(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	quiz, err := h.quizService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// CreateQuiz creates a quiz
// @Summary Create quiz
// @Description Questions are validated and normalized for the quiz type; any invalid question rejects the whole quiz.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body models.QuizForm true "Quiz data"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	var form models.QuizForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating quiz", "course_id", form.CourseID, "quiz_type", form.QuizType, "questions", len(form.Questions))

	quiz, err := h.quizService.Create(c.Request.Context(), user, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var form models.QuizForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), user, id, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) GetResults(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if !h.canViewResults(c, user, id) {
		return
	}
	results, err := h.quizService.Results(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// ExportResults downloads quiz results as a spreadsheet
// @Summary Export quiz results
// @Tags quizzes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quiz ID"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/results/export [get]
func (h *QuizHandler) ExportResults(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if !h.canViewResults(c, user, id) {
		return
	}
	data, err := h.exportService.ExportQuizResults(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="quiz-`+id.String()+`-results.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *QuizHandler) canViewResults(c *gin.Context, user models.CurrentUser, id models.ID) bool {
	if user.Role.CanAuthor() {
		return true
	}
	h.handleServiceError(c, services.NewPermissionError(user.ID.String(), id.String(), "quiz", "view results", "role cannot view quiz results"))
	return false
}

// ===== DRAFTS =====

func (h *QuizHandler) SaveDraft(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	var form models.QuizForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	draft, err := h.quizService.SaveDraft(c.Request.Context(), user, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *QuizHandler) GetDraft(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, err := h.quizService.GetDraft(c.Request.Context(), user, id.String())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *QuizHandler) UpdateDraft(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var form models.QuizForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	draft, err := h.quizService.UpdateDraft(c.Request.Context(), user, id.String(), &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ChangeDraftTypeRequest switches a draft to another quiz type
type ChangeDraftTypeRequest struct {
	QuizType models.QuizType `json:"quiz_type" binding:"required"`
}

// ChangeDraftType switches a saved draft's quiz type
// @Summary Change draft quiz type
// @Description Existing questions are discarded, so a draft with question content needs confirm=true.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param confirm query bool false "Discard existing questions"
// @Success 200 {object} models.QuizForm
// @Failure 409 {object} ErrorResponse
// @Router /quiz-drafts/{id}/type [put]
func (h *QuizHandler) ChangeDraftType(c *gin.Context) {
	var req ChangeDraftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}
	h.editDraft(c, func(form *models.QuizForm) error {
		return h.quizService.ChangeType(form, req.QuizType, confirmed(c))
	})
}

// AddDraftQuestion appends an empty question to a saved draft.
func (h *QuizHandler) AddDraftQuestion(c *gin.Context) {
	h.editDraft(c, func(form *models.QuizForm) error {
		form.Questions = append(form.Questions, h.quizService.NewQuestion())
		return nil
	})
}

func (h *QuizHandler) editDraft(c *gin.Context, edit func(form *models.QuizForm) error) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, err := h.quizService.GetDraft(c.Request.Context(), user, id.String())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if err := edit(form); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if _, err := h.quizService.UpdateDraft(c.Request.Context(), user, id.String(), form); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}
