package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// QuizPayload is the sanitized quiz as sent to the backend.
type QuizPayload struct {
	CourseID        models.ID         `json:"course_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Guidelines      string            `json:"guidelines"`
	QuizType        models.QuizType   `json:"quiz_type"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
	MaxAttempts     *int              `json:"max_attempts,omitempty"`
	Questions       []models.Question `json:"questions"`
	IsActive        bool              `json:"is_active"`
}

func (c *Client) ListQuizzes(ctx context.Context, courseID models.ID) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := c.getJSON(ctx, &quizzes, "/quizzes/?course_id=%s", url.QueryEscape(courseID.String())); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id models.ID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.getJSON(ctx, &quiz, "/quizzes/%s", url.PathEscape(id.String())); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) CreateQuiz(ctx context.Context, payload *QuizPayload) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.sendJSON(ctx, http.MethodPost, "/quizzes/", payload, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) UpdateQuiz(ctx context.Context, id models.ID, payload *QuizPayload) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.sendJSON(ctx, http.MethodPut, "/quizzes/"+url.PathEscape(id.String()), payload, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *Client) QuizResults(ctx context.Context, id models.ID) ([]models.QuizResult, error) {
	var results []models.QuizResult
	if err := c.getJSON(ctx, &results, "/quizzes/%s/results", url.PathEscape(id.String())); err != nil {
		return nil, err
	}
	return results, nil
}
