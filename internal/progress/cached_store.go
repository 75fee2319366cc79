package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 24 * time.Hour

// CachedStore keeps recently written progress in Redis in front of the local
// store. Redis failures are logged and the local store answers instead.
type CachedStore struct {
	next   Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(next Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(userID, lessonID models.ID) string {
	return fmt.Sprintf("progress:%s:%s", userID, models.ProgressKey(lessonID))
}

func (s *CachedStore) Save(ctx context.Context, p *models.LessonProgress) error {
	if err := s.next.Save(ctx, p); err != nil {
		return err
	}
	s.put(ctx, p)
	return nil
}

func (s *CachedStore) Load(ctx context.Context, userID, lessonID models.ID) (*models.LessonProgress, error) {
	raw, err := s.client.Get(ctx, cacheKey(userID, lessonID)).Bytes()
	switch {
	case err == nil:
		var p models.LessonProgress
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			p.UserID = userID
			return &p, nil
		}
		s.logger.WarnContext(ctx, "Discarding unreadable cached progress", "lesson_id", lessonID)
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "Progress cache read failed", "lesson_id", lessonID, "error", err)
	}

	p, err := s.next.Load(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	s.put(ctx, p)
	return p, nil
}

func (s *CachedStore) ListForUser(ctx context.Context, userID models.ID) ([]*models.LessonProgress, error) {
	return s.next.ListForUser(ctx, userID)
}

func (s *CachedStore) put(ctx context.Context, p *models.LessonProgress) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, cacheKey(p.UserID, p.LessonID), raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "Progress cache write failed", "lesson_id", p.LessonID, "error", err)
	}
}
