package progress

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// Syncer pushes saved progress to an upstream service. No upstream endpoint
// exists today, so NoopSyncer is wired by default.
type Syncer interface {
	Push(ctx context.Context, p *models.LessonProgress) error
}

type NoopSyncer struct{}

func (NoopSyncer) Push(context.Context, *models.LessonProgress) error { return nil }

// SyncingStore saves locally first, then pushes. A failed push never fails the save.
type SyncingStore struct {
	Store
	syncer Syncer
	logger *slog.Logger
}

func WithSync(store Store, syncer Syncer, logger *slog.Logger) *SyncingStore {
	if syncer == nil {
		syncer = NoopSyncer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncingStore{Store: store, syncer: syncer, logger: logger}
}

func (s *SyncingStore) Save(ctx context.Context, p *models.LessonProgress) error {
	if err := s.Store.Save(ctx, p); err != nil {
		return err
	}
	if err := s.syncer.Push(ctx, p); err != nil {
		s.logger.WarnContext(ctx, "Progress sync failed", "lesson_id", p.LessonID, "error", err)
	}
	return nil
}
