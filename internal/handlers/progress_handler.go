package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// RecordProgressRequest is a playback position report
type RecordProgressRequest struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

// GetPlaylist returns a course's lessons in playback order
// @Summary Course playlist
// @Tags player
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {array} models.Lesson
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id}/playlist [get]
func (h *ProgressHandler) GetPlaylist(c *gin.Context) {
	courseID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	playlist, err := h.progressService.Playlist(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	lessonID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.progressService.Get(c.Request.Context(), user, lessonID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RecordProgress stores the caller's position in a lesson
// @Summary Record lesson progress
// @Tags player
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param progress body RecordProgressRequest true "Position"
// @Success 200 {object} models.LessonProgress
// @Failure 400 {object} ErrorResponse
// @Router /lessons/{id}/progress [put]
func (h *ProgressHandler) RecordProgress(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		return
	}
	lessonID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	p, err := h.progressService.Record(c.Request.Context(), user, lessonID, req.CurrentTime, req.Duration)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
