package models

import "time"

type Submission struct {
	ID                 ID         `json:"id"`
	AssignmentID       ID         `json:"assignment_id"`
	StudentID          ID         `json:"student_id"`
	StudentName        string     `json:"student_name,omitempty"`
	FileURL            string     `json:"file_url"`
	Comments           string     `json:"comments"`
	Marks              *float64   `json:"marks,omitempty"`
	InstructorComments string     `json:"instructor_comments,omitempty"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
}

type Review struct {
	Marks              float64 `json:"marks" validate:"gte=0"`
	InstructorComments string  `json:"instructor_comments"`
}
