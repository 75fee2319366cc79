package models

import "io"

// FileUpload is a file handed to an upload or submission workflow.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
