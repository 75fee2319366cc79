package models

import "time"

// Module is an ordered grouping of lessons within a course.
type Module struct {
	ID          ID         `json:"id"`
	CourseID    ID         `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	Lessons     []Lesson   `json:"lessons,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type ModuleDraft struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"omitempty,min=1"`
}

// Lesson is the atomic content unit. It may carry one video and one PDF.
type Lesson struct {
	ID          ID         `json:"id"`
	ModuleID    ID         `json:"module_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Order       int        `json:"order"`
	VideoURL    string     `json:"video_url,omitempty"`
	PDFURL      string     `json:"pdf_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// HasContent reports whether the lesson is playable.
func (l Lesson) HasContent() bool {
	return l.VideoURL != "" || l.PDFURL != ""
}

type LessonDraft struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description"`
	Duration    string `json:"duration" validate:"omitempty,lesson_duration"`
	Order       int    `json:"order" validate:"omitempty,min=1"`
	VideoURL    string `json:"video_url,omitempty"`
	PDFURL      string `json:"pdf_url,omitempty"`
}
