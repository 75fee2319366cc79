package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
	submissionService services.SubmissionService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, submissionService services.SubmissionService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
		submissionService: submissionService,
	}
}

// UpdateStatusRequest moves an assignment between draft and published
type UpdateStatusRequest struct {
	Status models.AssignmentStatus `json:"status" binding:"required"`
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	assignments, err := h.assignmentService.List(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment creates a draft assignment in a course
// @Summary Create assignment
// @Description JSON body, or multipart with a "payload" JSON field and an optional "attachment" file.
// @Tags assignments
// @Accept json,multipart/form-data
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} ErrorResponse
// @Router /courses/{id}/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, cleanup, ok := h.bindAssignmentForm(c)
	if !ok {
		return
	}
	defer cleanup()
	form.CourseID = courseID

	assignment, err := h.assignmentService.Create(c.Request.Context(), user, form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, cleanup, ok := h.bindAssignmentForm(c)
	if !ok {
		return
	}
	defer cleanup()

	assignment, err := h.assignmentService.Update(c.Request.Context(), user, id, form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Changing assignment status", "assignment_id", id, "status", req.Status)

	assignment, err := h.assignmentService.SetStatus(c.Request.Context(), user, id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// ===== SUBMISSIONS =====

// SubmitAssignment uploads a student's work
// @Summary Submit assignment
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Assignment ID"
// @Param file formData file true "Submission file"
// @Param comments formData string false "Comments"
// @Success 201 {object} models.Submission
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /assignments/{id}/submissions [post]
func (h *AssignmentHandler) SubmitAssignment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	file, closer, err := formFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid upload", Details: err.Error()})
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), user, id, file, c.PostForm("comments"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	submissions, err := h.submissionService.ListForAssignment(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *AssignmentHandler) ReviewSubmission(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	submission, err := h.submissionService.Review(c.Request.Context(), user, id, &review)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// bindAssignmentForm accepts a JSON body or a multipart form carrying the
// same JSON in "payload" plus an optional "attachment".
func (h *AssignmentHandler) bindAssignmentForm(c *gin.Context) (*models.AssignmentForm, func(), bool) {
	var form models.AssignmentForm
	noop := func() {}

	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
			return nil, noop, false
		}
		return &form, noop, true
	}

	if err := json.Unmarshal([]byte(c.PostForm("payload")), &form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid payload field", Details: err.Error()})
		return nil, noop, false
	}
	file, closer, err := formFile(c, "attachment")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid attachment", Details: err.Error()})
		return nil, noop, false
	}
	form.Attachment = file
	if closer == nil {
		return &form, noop, true
	}
	return &form, func() { closer.Close() }, true
}
