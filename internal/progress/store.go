// Package progress persists per-lesson playback positions.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("lesson progress not found")

type Store interface {
	Save(ctx context.Context, p *models.LessonProgress) error
	Load(ctx context.Context, userID, lessonID models.ID) (*models.LessonProgress, error)
	ListForUser(ctx context.Context, userID models.ID) ([]*models.LessonProgress, error)
}

// GormStore is the local tier. Rows are keyed by (user, lesson); a save
// replaces the previous record.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.LessonProgress{})
}

func (s *GormStore) Save(ctx context.Context, p *models.LessonProgress) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to save progress for lesson %s: %w", p.LessonID, err)
	}
	return nil
}

func (s *GormStore) Load(ctx context.Context, userID, lessonID models.ID) (*models.LessonProgress, error) {
	var p models.LessonProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load progress for lesson %s: %w", lessonID, err)
	}
	return &p, nil
}

func (s *GormStore) ListForUser(ctx context.Context, userID models.ID) ([]*models.LessonProgress, error) {
	var rows []*models.LessonProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_watched DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return rows, nil
}
