package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/upload"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

// HierarchyHandler manages the module and lesson levels of a course.
type HierarchyHandler struct {
	BaseHandler
	moduleService services.ModuleService
	lessonService services.LessonService
}

func NewHierarchyHandler(moduleService services.ModuleService, lessonService services.LessonService, logger utils.Logger) *HierarchyHandler {
	return &HierarchyHandler{
		BaseHandler:   NewBaseHandler(logger),
		moduleService: moduleService,
		lessonService: lessonService,
	}
}

// ===== MODULES =====

func (h *HierarchyHandler) ListModules(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	modules, err := h.moduleService.List(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// CreateModule adds a module to a course
// @Summary Create module
// @Description A missing order defaults to the current module count plus one.
// @Tags modules
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param module body models.ModuleDraft true "Module data"
// @Success 201 {object} models.Module
// @Failure 400 {object} ErrorResponse
// @Router /courses/{id}/modules [post]
func (h *HierarchyHandler) CreateModule(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var draft models.ModuleDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	module, err := h.moduleService.Create(c.Request.Context(), user, courseID, &draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, module)
}

func (h *HierarchyHandler) UpdateModule(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var draft models.ModuleDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	module, err := h.moduleService.Update(c.Request.Context(), user, id, &draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// DeleteModule deletes a module and its lessons
// @Summary Delete module
// @Tags modules
// @Produce json
// @Param id path string true "Module ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} SuccessResponse{data=services.CascadeReport}
// @Failure 409 {object} ErrorResponse
// @Router /modules/{id} [delete]
func (h *HierarchyHandler) DeleteModule(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting module", "module_id", id)

	report, err := h.moduleService.Delete(c.Request.Context(), user, id, confirmed(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Module deleted", report)
}

// ===== LESSONS =====

func (h *HierarchyHandler) ListLessons(c *gin.Context) {
	moduleID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	lessons, err := h.lessonService.List(c.Request.Context(), moduleID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *HierarchyHandler) CreateLesson(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	moduleID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var draft models.LessonDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), user, moduleID, &draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *HierarchyHandler) UpdateLesson(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var draft models.LessonDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), user, id, &draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *HierarchyHandler) DeleteLesson(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.lessonService.Delete(c.Request.Context(), user, id, confirmed(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadVideo attaches a video to a lesson
// @Summary Upload lesson video
// @Description Accepts mp4, avi, mov, wmv or webm up to 500 MB.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Lesson ID"
// @Param file formData file true "Video file"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} ErrorResponse
// @Router /lessons/{id}/video [post]
func (h *HierarchyHandler) UploadVideo(c *gin.Context) {
	h.upload(c, h.lessonService.UploadVideo)
}

// UploadPDF attaches a PDF to a lesson
// @Summary Upload lesson PDF
// @Description Accepts application/pdf up to 50 MB.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Lesson ID"
// @Param file formData file true "PDF file"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} ErrorResponse
// @Router /lessons/{id}/pdf [post]
func (h *HierarchyHandler) UploadPDF(c *gin.Context) {
	h.upload(c, h.lessonService.UploadPDF)
}

type uploadFunc func(ctx context.Context, user models.CurrentUser, lessonID models.ID, file *models.FileUpload, onProgress func(upload.Progress)) (*models.Lesson, error)

func (h *HierarchyHandler) upload(c *gin.Context, send uploadFunc) {
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

	lesson, err := send(c.Request.Context(), user, id, file, func(p upload.Progress) {
		h.LogDebug(c, "Upload progress", "lesson_id", id, "percent", p.Percent())
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}
