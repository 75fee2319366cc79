package models

type AssignmentType string

const (
	AssignmentExercise AssignmentType = "exercise"
	AssignmentProject  AssignmentType = "project"
	AssignmentQuiz     AssignmentType = "quiz"
	AssignmentEssay    AssignmentType = "essay"
)

type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "draft"
	AssignmentPublished AssignmentStatus = "published"
)

type Assignment struct {
	ID               ID               `json:"id"`
	CourseID         ID               `json:"course_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Instructions     string           `json:"instructions"`
	Type             AssignmentType   `json:"assignment_type"`
	MaxPoints        float64          `json:"max_points"`
	DueDate          Date             `json:"due_date"`
	Status           AssignmentStatus `json:"status"`
	AttachmentURL    string           `json:"attachment_url,omitempty"`
	AssignedStudents []ID             `json:"assigned_students,omitempty"`
}

// AssignmentForm is the create/update input. An empty AssignedStudents list
// means the assignment targets everyone enrolled.
type AssignmentForm struct {
	CourseID         ID             `json:"course_id" validate:"required"`
	Title            string         `json:"title" validate:"required,notblank"`
	Description      string         `json:"description"`
	Instructions     string         `json:"instructions"`
	Type             AssignmentType `json:"assignment_type" validate:"required,assignment_type"`
	MaxPoints        float64        `json:"max_points" validate:"gt=0"`
	DueDate          Date           `json:"due_date" validate:"required"`
	AssignedStudents []ID           `json:"assigned_students"`
	Attachment       *FileUpload    `json:"-"`
}
