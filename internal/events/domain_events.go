package events

import (
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/google/uuid"
)

const (
	eventSource  = "course-studio"
	eventVersion = "1.0"
)

// EventType represents the kinds of domain events the studio emits
type EventType string

const (
	// Course authoring events
	EventCourseCreated      EventType = "course.created"
	EventCourseDeleted      EventType = "course.deleted"
	EventLessonFileUploaded EventType = "lesson.file_uploaded"

	// Learning events
	EventLessonCompleted EventType = "lesson.completed"

	// Assessment events
	EventAssignmentPublished EventType = "assignment.published"
	EventQuizCreated         EventType = "quiz.created"
	EventSubmissionCreated   EventType = "submission.created"
	EventSubmissionGraded    EventType = "submission.graded"
)

// Event is the envelope for every published domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	ActorID   models.ID              `json:"actor_id,omitempty"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type CourseCreatedEvent struct {
	CourseID     models.ID `json:"course_id"`
	Title        string    `json:"title"`
	InstructorID models.ID `json:"instructor_id"`
}

type CourseDeletedEvent struct {
	CourseID models.ID `json:"course_id"`
}

type LessonFileUploadedEvent struct {
	LessonID models.ID `json:"lesson_id"`
	Kind     string    `json:"kind"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
}

type LessonCompletedEvent struct {
	LessonID   models.ID `json:"lesson_id"`
	StudentID  models.ID `json:"student_id"`
	Percentage float64   `json:"percentage"`
}

type AssignmentPublishedEvent struct {
	AssignmentID     models.ID   `json:"assignment_id"`
	CourseID         models.ID   `json:"course_id"`
	Title            string      `json:"title"`
	DueDate          time.Time   `json:"due_date"`
	AssignedStudents []models.ID `json:"assigned_students,omitempty"`
}

type QuizCreatedEvent struct {
	QuizID        models.ID       `json:"quiz_id"`
	CourseID      models.ID       `json:"course_id"`
	QuizType      models.QuizType `json:"quiz_type"`
	QuestionCount int             `json:"question_count"`
}

type SubmissionCreatedEvent struct {
	SubmissionID models.ID `json:"submission_id"`
	AssignmentID models.ID `json:"assignment_id"`
	StudentID    models.ID `json:"student_id"`
}

type SubmissionGradedEvent struct {
	SubmissionID models.ID `json:"submission_id"`
	AssignmentID models.ID `json:"assignment_id"`
	StudentID    models.ID `json:"student_id"`
	Marks        float64   `json:"marks"`
	MaxPoints    float64   `json:"max_points"`
}

// NewEvent wraps a payload in an envelope stamped with a fresh ID.
func NewEvent(eventType EventType, actorID models.ID, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		ActorID:   actorID,
		Data:      data,
	}
}

func NewCourseCreatedEvent(course *models.Course, actorID models.ID) *Event {
	return NewEvent(EventCourseCreated, actorID, CourseCreatedEvent{
		CourseID:     course.ID,
		Title:        course.Title,
		InstructorID: course.InstructorID,
	})
}

func NewAssignmentPublishedEvent(a *models.Assignment, actorID models.ID) *Event {
	return NewEvent(EventAssignmentPublished, actorID, AssignmentPublishedEvent{
		AssignmentID:     a.ID,
		CourseID:         a.CourseID,
		Title:            a.Title,
		DueDate:          a.DueDate.Time,
		AssignedStudents: a.AssignedStudents,
	})
}

func NewQuizCreatedEvent(q *models.Quiz, actorID models.ID) *Event {
	return NewEvent(EventQuizCreated, actorID, QuizCreatedEvent{
		QuizID:        q.ID,
		CourseID:      q.CourseID,
		QuizType:      q.QuizType,
		QuestionCount: len(q.Questions),
	})
}

func NewSubmissionGradedEvent(s *models.Submission, maxPoints float64, actorID models.ID) *Event {
	var marks float64
	if s.Marks != nil {
		marks = *s.Marks
	}
	return NewEvent(EventSubmissionGraded, actorID, SubmissionGradedEvent{
		SubmissionID: s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		Marks:        marks,
		MaxPoints:    maxPoints,
	})
}
