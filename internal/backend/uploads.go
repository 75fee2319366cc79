package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/upload"
)

type UploadKind string

const (
	UploadVideo UploadKind = "lesson-video"
	UploadPDF   UploadKind = "lesson-pdf"
)

type uploadResponse struct {
	URL      string `json:"url"`
	FileURL  string `json:"file_url"`
	VideoURL string `json:"video_url"`
	PDFURL   string `json:"pdf_url"`
}

func (r uploadResponse) location() string {
	for _, u := range []string{r.URL, r.FileURL, r.VideoURL, r.PDFURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// UploadLessonFile streams a lesson file and returns its storage URL.
func (c *Client) UploadLessonFile(ctx context.Context, kind UploadKind, lessonID models.ID, file *models.FileUpload, progress func(upload.Progress)) (string, error) {
	path := fmt.Sprintf("/upload/%s/%s", kind, url.PathEscape(lessonID.String()))

	var resp uploadResponse
	if err := c.sendMultipart(ctx, http.MethodPost, path, nil, "file", file, progress, &resp); err != nil {
		return "", err
	}
	location := resp.location()
	if location == "" {
		return "", fmt.Errorf("backend %s returned no file URL", path)
	}
	return location, nil
}
