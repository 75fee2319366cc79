package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/progress"
	"github.com/SAP-F-2025/course-studio/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-studio/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, progress.NewGormStore(db).AutoMigrate(context.Background()))
	require.NoError(t, postgres.AutoMigrate(context.Background(), db))
	return db
}

func newProgressServiceForTest(t *testing.T) (*MockModuleRepository, *MockLessonRepository, *events.MockEventPublisher, ProgressService) {
	modules := new(MockModuleRepository)
	lessons := new(MockLessonRepository)
	pub := events.NewMockEventPublisher(discardLogger())
	moduleSvc := NewModuleService(modules, lessons, validator.New(), discardLogger())
	store := progress.NewGormStore(setupTestDB(t))
	clock := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return modules, lessons, pub, NewProgressService(moduleSvc, store, pub, discardLogger(), clock)
}

func TestProgressService_Playlist_OrdersByModuleThenLesson(t *testing.T) {
	modules, lessons, _, svc := newProgressServiceForTest(t)
	ctx := context.Background()

	modules.On("ListModules", ctx, models.ID("c1")).Return([]models.Module{
		{ID: "m2", Order: 2},
		{ID: "m1", Order: 1},
	}, nil)
	lessons.On("ListLessons", ctx, models.ID("m1")).Return([]models.Lesson{
		{ID: "b", Order: 2, VideoURL: "/b.mp4"},
		{ID: "a", Order: 1},
	}, nil)
	lessons.On("ListLessons", ctx, models.ID("m2")).Return([]models.Lesson{
		{ID: "c", Order: 1, PDFURL: "/c.pdf"},
	}, nil)

	playlist, err := svc.Playlist(ctx, "c1")

	require.NoError(t, err)
	var ids []models.ID
	for _, l := range playlist {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []models.ID{"a", "b", "c"}, ids)
}

func TestProgressService_Get_Missing(t *testing.T) {
	_, _, _, svc := newProgressServiceForTest(t)

	_, err := svc.Get(context.Background(), student, "l1")

	assert.ErrorIs(t, err, ErrProgressNotFound)
	assert.True(t, IsNotFound(err))
}

func TestProgressService_Record(t *testing.T) {
	_, _, pub, svc := newProgressServiceForTest(t)
	ctx := context.Background()

	p, err := svc.Record(ctx, student, "l1", 30, 120)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, p.Percentage, 1e-9)
	assert.Empty(t, pub.GetPublishedEvents())

	loaded, err := svc.Get(ctx, student, "l1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, loaded.CurrentTime)

	_, err = svc.Get(ctx, instructor, "l1")
	assert.ErrorIs(t, err, ErrProgressNotFound)

	p, err = svc.Record(ctx, student, "l1", 500, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, p.CurrentTime)
	assert.True(t, p.Completed())

	_, err = svc.Record(ctx, student, "l1", 119, 120)
	require.NoError(t, err)

	published := pub.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLessonCompleted, published[0].Type)
}

func TestProgressService_Record_Invalid(t *testing.T) {
	_, _, _, svc := newProgressServiceForTest(t)

	_, err := svc.Record(context.Background(), student, "l1", -1, 0)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.ElementsMatch(t, []string{"duration", "currentTime"}, verrs.Fields())
}
