package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

func (c *Client) ListModules(ctx context.Context, courseID models.ID) ([]models.Module, error) {
	var modules []models.Module
	if err := c.getJSON(ctx, &modules, "/courses/%s/modules", url.PathEscape(courseID.String())); err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) CreateModule(ctx context.Context, courseID models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	var module models.Module
	path := "/courses/" + url.PathEscape(courseID.String()) + "/modules"
	if err := c.sendJSON(ctx, http.MethodPost, path, draft, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *Client) UpdateModule(ctx context.Context, moduleID models.ID, draft *models.ModuleDraft) (*models.Module, error) {
	var module models.Module
	if err := c.sendJSON(ctx, http.MethodPut, "/courses/modules/"+url.PathEscape(moduleID.String()), draft, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

// DeleteModule removes a module; the backend cascades to its lessons.
func (c *Client) DeleteModule(ctx context.Context, moduleID models.ID) error {
	return c.sendJSON(ctx, http.MethodDelete, "/courses/modules/"+url.PathEscape(moduleID.String()), nil, nil)
}

func (c *Client) ListLessons(ctx context.Context, moduleID models.ID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.getJSON(ctx, &lessons, "/modules/%s/lessons", url.PathEscape(moduleID.String())); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c *Client) CreateLesson(ctx context.Context, moduleID models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	var lesson models.Lesson
	path := "/modules/" + url.PathEscape(moduleID.String()) + "/lessons"
	if err := c.sendJSON(ctx, http.MethodPost, path, draft, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) UpdateLesson(ctx context.Context, lessonID models.ID, draft *models.LessonDraft) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.sendJSON(ctx, http.MethodPut, "/modules/lessons/"+url.PathEscape(lessonID.String()), draft, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// PatchLesson sends a partial update, used to attach uploaded file URLs.
func (c *Client) PatchLesson(ctx context.Context, lessonID models.ID, fields map[string]interface{}) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.sendJSON(ctx, http.MethodPut, "/modules/lessons/"+url.PathEscape(lessonID.String()), fields, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) DeleteLesson(ctx context.Context, lessonID models.ID) error {
	return c.sendJSON(ctx, http.MethodDelete, "/modules/lessons/"+url.PathEscape(lessonID.String()), nil, nil)
}
