package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"gorm.io/gorm"
)

var ErrDraftNotFound = errors.New("quiz draft not found")

type QuizDraftPostgreSQL struct {
	db *gorm.DB
}

func NewQuizDraftPostgreSQL(db *gorm.DB) repositories.QuizDraftRepository {
	return &QuizDraftPostgreSQL{db: db}
}

// AutoMigrate creates the drafts table on first start
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&models.QuizDraft{})
}

func (q *QuizDraftPostgreSQL) Create(ctx context.Context, draft *models.QuizDraft) error {
	if err := q.db.WithContext(ctx).Create(draft).Error; err != nil {
		return fmt.Errorf("failed to create quiz draft: %w", err)
	}
	return nil
}

func (q *QuizDraftPostgreSQL) GetByID(ctx context.Context, id string) (*models.QuizDraft, error) {
	var draft models.QuizDraft
	err := q.db.WithContext(ctx).First(&draft, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get quiz draft: %w", err)
	}
	return &draft, nil
}

// Update replaces type and payload. Ownership is never reassigned.
func (q *QuizDraftPostgreSQL) Update(ctx context.Context, draft *models.QuizDraft) error {
	result := q.db.WithContext(ctx).
		Model(&models.QuizDraft{}).
		Where("id = ?", draft.ID).
		Updates(map[string]interface{}{
			"course_id": draft.CourseID,
			"quiz_type": draft.QuizType,
			"payload":   draft.Payload,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update quiz draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

func (q *QuizDraftPostgreSQL) ListByOwner(ctx context.Context, ownerID models.ID) ([]*models.QuizDraft, error) {
	var drafts []*models.QuizDraft
	err := q.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz drafts: %w", err)
	}
	return drafts, nil
}

func (q *QuizDraftPostgreSQL) Delete(ctx context.Context, id string) error {
	result := q.db.WithContext(ctx).Delete(&models.QuizDraft{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete quiz draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}
