package models

import "time"

const (
	ProgressKeyPrefix      = "video_progress_"
	CompletionThresholdPct = 90.0
)

// LessonProgress is the locally persisted playback position for one lesson.
type LessonProgress struct {
	UserID      ID        `json:"-" gorm:"primaryKey;size:64"`
	LessonID    ID        `json:"lessonId" gorm:"primaryKey;size:64"`
	CurrentTime float64   `json:"currentTime"`
	Duration    float64   `json:"duration"`
	Percentage  float64   `json:"percentage"`
	LastWatched time.Time `json:"lastWatched"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// NewLessonProgress computes the percentage from a position/duration pair.
func NewLessonProgress(userID, lessonID ID, currentTime, duration float64, at time.Time) *LessonProgress {
	p := &LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CurrentTime: currentTime,
		Duration:    duration,
		LastWatched: at,
	}
	if duration > 0 {
		p.Percentage = currentTime / duration * 100
	}
	return p
}

func (p *LessonProgress) Completed() bool {
	return p.Percentage > CompletionThresholdPct
}

// ProgressKey is the storage key for a lesson's progress record.
func ProgressKey(lessonID ID) string {
	return ProgressKeyPrefix + string(lessonID)
}
