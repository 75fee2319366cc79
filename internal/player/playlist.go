// Package player drives sequential lesson playback over a course's modules.
package player

import (
	"sort"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// BuildPlaylist flattens modules into playback order. Modules are sorted by
// order and each module's lessons by order, both stably, so equal orders
// keep the backend's sequence.
func BuildPlaylist(modules []models.Module) []models.Lesson {
	sorted := make([]models.Module, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	var playlist []models.Lesson
	for _, m := range sorted {
		lessons := make([]models.Lesson, len(m.Lessons))
		copy(lessons, m.Lessons)
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].Order < lessons[j].Order
		})
		playlist = append(playlist, lessons...)
	}
	return playlist
}

// Playable returns the index of the first lesson with content, or -1.
func Playable(playlist []models.Lesson) int {
	return nextPlayable(playlist, -1, 1)
}

func nextPlayable(playlist []models.Lesson, from, step int) int {
	for i := from + step; i >= 0 && i < len(playlist); i += step {
		if playlist[i].HasContent() {
			return i
		}
	}
	return -1
}
