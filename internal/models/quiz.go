package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizType string

const (
	QuizMCQ        QuizType = "mcq"
	QuizTrueFalse  QuizType = "true_false"
	QuizFillBlanks QuizType = "fill_blanks"
	QuizSubjective QuizType = "subjective"
)

// BlankPlaceholder must appear in every fill_blanks question.
const BlankPlaceholder = "___"

type Quiz struct {
	ID              ID         `json:"id"`
	CourseID        ID         `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Guidelines      string     `json:"guidelines"`
	QuizType        QuizType   `json:"quiz_type"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	MaxAttempts     *int       `json:"max_attempts,omitempty"`
	Questions       []Question `json:"questions"`
	IsActive        bool       `json:"is_active"`
}

// Question carries every variant's fields; which ones matter depends on the
// quiz type. Key is a client-side handle for unsaved drafts only.
type Question struct {
	Key            string   `json:"-"`
	Text           string   `json:"question_text"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	ExpectedAnswer string   `json:"expected_answer,omitempty"`
}

type QuizForm struct {
	CourseID        ID         `json:"course_id" validate:"required"`
	Title           string     `json:"title" validate:"required,notblank"`
	Description     string     `json:"description"`
	Guidelines      string     `json:"guidelines"`
	QuizType        QuizType   `json:"quiz_type" validate:"required,quiz_type"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=1"`
	MaxAttempts     *int       `json:"max_attempts" validate:"omitempty,min=1"`
	Questions       []Question `json:"questions" validate:"required,min=1"`
	IsActive        bool       `json:"is_active"`
}

type QuizResult struct {
	StudentID   ID         `json:"student_id"`
	StudentName string     `json:"student_name"`
	Score       float64    `json:"score"`
	MaxScore    float64    `json:"max_score"`
	Attempt     int        `json:"attempt"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// QuizDraft is an in-progress quiz saved locally before submission.
type QuizDraft struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	OwnerID   ID             `json:"owner_id" gorm:"size:64;index"`
	CourseID  ID             `json:"course_id" gorm:"size:64"`
	QuizType  QuizType       `json:"quiz_type" gorm:"size:20"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (QuizDraft) TableName() string {
	return "quiz_drafts"
}
