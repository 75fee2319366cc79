package validator

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

const (
	MaxVideoSize int64 = 500 << 20
	MaxPDFSize   int64 = 50 << 20
)

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".webm": true,
}

// UploadValidator applies the client-side acceptance policy for lesson files.
type UploadValidator struct{}

func NewUploadValidator() *UploadValidator {
	return &UploadValidator{}
}

func (u *UploadValidator) ValidateVideo(file *models.FileUpload) ValidationErrors {
	var errs ValidationErrors
	if file == nil || file.Content == nil {
		return errs.Add("file", "is required", nil)
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !allowedVideoExtensions[ext] {
		errs = errs.Add("file", "video must be one of mp4, avi, mov, wmv, webm", file.Name)
	}
	if file.Size > MaxVideoSize {
		errs = errs.Add("file", "video must not exceed 500 MB", file.Size)
	}
	return errs
}

func (u *UploadValidator) ValidatePDF(file *models.FileUpload) ValidationErrors {
	var errs ValidationErrors
	if file == nil || file.Content == nil {
		return errs.Add("file", "is required", nil)
	}
	mediaType, _, err := mime.ParseMediaType(file.ContentType)
	if err != nil || mediaType != "application/pdf" {
		errs = errs.Add("file", "must be a PDF document", file.ContentType)
	}
	if file.Size > MaxPDFSize {
		errs = errs.Add("file", "PDF must not exceed 50 MB", file.Size)
	}
	return errs
}
