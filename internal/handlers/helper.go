package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey      = "user_id"
	currentUserKey = "current_user"
)

// ParseIDParam reads a path identifier. It writes the 400 itself and returns
// false when the value is blank.
func ParseIDParam(c *gin.Context, param string) (models.ID, bool) {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return "", false
	}
	return models.ID(idStr), true
}

// CurrentUser returns the user the auth middleware resolved for this request.
func CurrentUser(c *gin.Context) (models.CurrentUser, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    "unauthorized",
		})
		return models.CurrentUser{}, false
	}
	user, ok := v.(models.CurrentUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    "unauthorized",
		})
		return models.CurrentUser{}, false
	}
	return user, true
}

// confirmed reads the confirm query flag destructive actions require.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// formFile opens an uploaded multipart file. A missing field yields nil so
// the service decides whether the file was required.
func formFile(c *gin.Context, field string) (*models.FileUpload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &models.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	}, f, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
