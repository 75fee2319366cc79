package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/player"
	"github.com/SAP-F-2025/course-studio/internal/progress"
)

type progressService struct {
	modules   ModuleService
	store     progress.Store
	publisher events.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewProgressService(modules ModuleService, store progress.Store, publisher events.EventPublisher, logger *slog.Logger, now func() time.Time) ProgressService {
	if now == nil {
		now = time.Now
	}
	return &progressService{
		modules:   modules,
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       now,
	}
}

// Playlist is the course's lessons in playback order, content-less ones included.
func (s *progressService) Playlist(ctx context.Context, courseID models.ID) ([]models.Lesson, error) {
	tree, err := s.modules.Tree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	playlist := player.BuildPlaylist(tree)
	if playlist == nil {
		playlist = []models.Lesson{}
	}
	return playlist, nil
}

func (s *progressService) Get(ctx context.Context, user models.CurrentUser, lessonID models.ID) (*models.LessonProgress, error) {
	p, err := s.store.Load(ctx, user.ID, lessonID)
	if errors.Is(err, progress.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProgressNotFound, lessonID)
	}
	return p, err
}

// Record stores the reported position. Crossing the completion threshold for
// the first time emits lesson.completed.
func (s *progressService) Record(ctx context.Context, user models.CurrentUser, lessonID models.ID, currentTime, duration float64) (*models.LessonProgress, error) {
	var verrs ValidationErrors
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		verrs = verrs.Add("duration", "must be greater than 0", duration)
	}
	if currentTime < 0 || math.IsNaN(currentTime) || math.IsInf(currentTime, 0) {
		verrs = verrs.Add("currentTime", "must be at least 0", currentTime)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	currentTime = math.Min(currentTime, duration)

	wasCompleted := false
	if prev, err := s.store.Load(ctx, user.ID, lessonID); err == nil {
		wasCompleted = prev.Completed()
	}

	record := models.NewLessonProgress(user.ID, lessonID, currentTime, duration, s.now())
	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}

	if record.Completed() && !wasCompleted {
		event := events.NewEvent(events.EventLessonCompleted, user.ID, events.LessonCompletedEvent{
			LessonID:   lessonID,
			StudentID:  user.ID,
			Percentage: record.Percentage,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish completion event", "lesson_id", lessonID, "error", err)
		}
	}
	return record, nil
}
