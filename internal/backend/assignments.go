package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// AssignmentPayload is the transport shape of an assignment write.
type AssignmentPayload struct {
	CourseID         models.ID               `json:"course_id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Instructions     string                  `json:"instructions"`
	Type             models.AssignmentType   `json:"assignment_type"`
	MaxPoints        float64                 `json:"max_points"`
	DueDate          time.Time               `json:"due_date"`
	Status           models.AssignmentStatus `json:"status,omitempty"`
	AssignedStudents []models.ID             `json:"assigned_students"`
}

func (p *AssignmentPayload) fields() map[string]string {
	ids := make([]string, 0, len(p.AssignedStudents))
	for _, id := range p.AssignedStudents {
		ids = append(ids, id.String())
	}
	fields := map[string]string{
		"course_id":         p.CourseID.String(),
		"title":             p.Title,
		"description":       p.Description,
		"instructions":      p.Instructions,
		"assignment_type":   string(p.Type),
		"max_points":        strconv.FormatFloat(p.MaxPoints, 'f', -1, 64),
		"due_date":          p.DueDate.Format(time.RFC3339),
		"assigned_students": strings.Join(ids, ","),
	}
	if p.Status != "" {
		fields["status"] = string(p.Status)
	}
	return fields
}

func (c *Client) ListAssignments(ctx context.Context, courseID models.ID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := c.getJSON(ctx, &assignments, "/assignments/course/%s", url.PathEscape(courseID.String())); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (c *Client) GetAssignment(ctx context.Context, id models.ID) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := c.getJSON(ctx, &assignment, "/assignments/%s", url.PathEscape(id.String())); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreateAssignment uses multipart when an attachment is present, JSON otherwise.
func (c *Client) CreateAssignment(ctx context.Context, payload *AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error) {
	return c.writeAssignment(ctx, http.MethodPost, "/assignments/", payload, attachment)
}

func (c *Client) UpdateAssignment(ctx context.Context, id models.ID, payload *AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error) {
	return c.writeAssignment(ctx, http.MethodPut, "/assignments/"+url.PathEscape(id.String()), payload, attachment)
}

func (c *Client) writeAssignment(ctx context.Context, method, path string, payload *AssignmentPayload, attachment *models.FileUpload) (*models.Assignment, error) {
	var assignment models.Assignment
	var err error
	if attachment != nil && attachment.Content != nil {
		err = c.sendMultipart(ctx, method, path, payload.fields(), "attachment", attachment, nil, &assignment)
	} else {
		err = c.sendJSON(ctx, method, path, payload, &assignment)
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) SetAssignmentStatus(ctx context.Context, id models.ID, status models.AssignmentStatus) (*models.Assignment, error) {
	var assignment models.Assignment
	body := map[string]string{"status": string(status)}
	if err := c.sendJSON(ctx, http.MethodPut, "/assignments/"+url.PathEscape(id.String()), body, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) SubmitAssignment(ctx context.Context, assignmentID models.ID, comments string, file *models.FileUpload) (*models.Submission, error) {
	var submission models.Submission
	path := "/assignments/" + url.PathEscape(assignmentID.String()) + "/submit"
	if err := c.sendMultipart(ctx, http.MethodPost, path, map[string]string{"comments": comments}, "file", file, nil, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (c *Client) ListSubmissions(ctx context.Context, assignmentID models.ID) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := c.getJSON(ctx, &submissions, "/assignments/%s/submissions", url.PathEscape(assignmentID.String())); err != nil {
		return nil, err
	}
	return submissions, nil
}

func (c *Client) GetSubmission(ctx context.Context, id models.ID) (*models.Submission, error) {
	var submission models.Submission
	if err := c.getJSON(ctx, &submission, "/assignments/submissions/%s", url.PathEscape(id.String())); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (c *Client) GradeSubmission(ctx context.Context, id models.ID, review *models.Review) (*models.Submission, error) {
	var submission models.Submission
	path := "/assignments/submissions/" + url.PathEscape(id.String()) + "/grade"
	if err := c.sendJSON(ctx, http.MethodPut, path, review, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}
