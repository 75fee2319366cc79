package models

import "time"

type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "Pending"
	CourseStatusActive   CourseStatus = "Active"
	CourseStatusRejected CourseStatus = "Rejected"
)

type Course struct {
	ID             ID           `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Price          float64      `json:"price"`
	InstructorID   ID           `json:"instructor_id"`
	InstructorName string       `json:"instructor_name,omitempty"`
	Status         CourseStatus `json:"status"`
	Published      bool         `json:"published"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
	Modules        []Module     `json:"modules,omitempty"`
}

// CourseForm is the raw editor input. Price stays textual until validated.
type CourseForm struct {
	Title        string `json:"title" validate:"required,notblank"`
	Description  string `json:"description" validate:"required,notblank"`
	Category     string `json:"category" validate:"required,notblank"`
	Price        string `json:"price" validate:"required,price"`
	InstructorID ID     `json:"instructor_id"`
}
