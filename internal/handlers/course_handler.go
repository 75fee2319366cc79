package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// CreateCourse submits a new course for approval
// @Summary Create course
// @Description New courses start Pending and unpublished. Instructors always author as themselves.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body models.CourseForm true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	var form models.CourseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating course", "title", form.Title)

	course, err := h.courseService.Submit(c.Request.Context(), user, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse updates an existing course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param course body models.CourseForm true "Course data"
// @Success 200 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var form models.CourseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), user, id, &form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Tags courses
// @Param id path string true "Course ID"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.courseService.Delete(c.Request.Context(), user, id, confirmed(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.courseService.ListInstructors(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, instructors)
}
