package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// CourseRecord is a course listing as the backend names its fields.
type CourseRecord struct {
	CourseCode        models.ID `json:"course_code"`
	ID                models.ID `json:"id"`
	CourseName        string    `json:"course_name"`
	Title             string    `json:"title"`
	CourseDescription string    `json:"course_description"`
	Description       string    `json:"description"`
	InstructorName    string    `json:"instructor_name"`
	Instructor        string    `json:"instructor"`
	Category          string    `json:"category"`
	Level             string    `json:"level"`
	CoursePrice       *float64  `json:"course_price"`
	Price             *float64  `json:"price"`
	Rating            *float64  `json:"rating"`
	Image             string    `json:"image"`
	Status            string    `json:"status"`
	EnrolledStudents  int       `json:"enrolled_students"`
	Revenue           float64   `json:"revenue"`
}

// CoursePayload is the body of course create and update calls.
type CoursePayload struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Price        float64             `json:"price"`
	InstructorID models.ID           `json:"instructor_id"`
	Status       models.CourseStatus `json:"status,omitempty"`
	Published    *bool               `json:"published,omitempty"`
}

func (c *Client) ListCourseRecords(ctx context.Context) ([]CourseRecord, error) {
	var records []CourseRecord
	if err := c.getJSON(ctx, &records, "/api/branch-courses/courses"); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateCourse(ctx context.Context, payload *CoursePayload) (*models.Course, error) {
	var course models.Course
	if err := c.sendJSON(ctx, http.MethodPost, "/course/", payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id models.ID, payload *CoursePayload) (*models.Course, error) {
	var course models.Course
	if err := c.sendJSON(ctx, http.MethodPut, "/course/"+url.PathEscape(id.String()), payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id models.ID) error {
	return c.sendJSON(ctx, http.MethodDelete, "/course/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	var instructors []models.Instructor
	if err := c.getJSON(ctx, &instructors, "/instructors/"); err != nil {
		return nil, err
	}
	return instructors, nil
}

func (c *Client) ListEnrolledStudents(ctx context.Context, courseID models.ID) ([]models.Student, error) {
	var students []models.Student
	if err := c.getJSON(ctx, &students, "/courses/%s/enrolled-students", url.PathEscape(courseID.String())); err != nil {
		return nil, fmt.Errorf("failed to list enrolled students: %w", err)
	}
	return students, nil
}
