package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/cache"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
)

const (
	DefaultCategory  = "General"
	DefaultLevel     = "Beginner"
	DefaultRating    = 4.5
	PlaceholderImage = "/images/course-placeholder.png"
)

var catalogCacheKey = cache.Key("catalog", "courses")

// sampleCourse is shown when the backend cannot be reached.
var sampleCourse = models.CatalogCourse{
	CourseID:    "sample-course",
	Title:       "Introduction to Web Development",
	Description: "Learn the fundamentals of HTML, CSS and JavaScript.",
	Instructor:  "Course Studio",
	Category:    DefaultCategory,
	Level:       DefaultLevel,
	Price:       0,
	Rating:      DefaultRating,
	Image:       PlaceholderImage,
	Status:      string(models.CourseStatusActive),
}

type catalogService struct {
	repo   repositories.CatalogRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogService(repo repositories.CatalogRepository, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) CatalogService {
	if cacheService == nil {
		cacheService = cache.NoopCache{}
	}
	return &catalogService{
		repo:   repo,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *catalogService) ListCourses(ctx context.Context) []models.CatalogCourse {
	courses, err := s.fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Catalog unavailable, serving sample course", "error", err)
		return []models.CatalogCourse{sampleCourse}
	}
	return courses
}

// SearchCourses matches term case-insensitively against title, description
// and instructor, then filters by exact category and level when given.
func (s *catalogService) SearchCourses(ctx context.Context, term, category, level string) []models.CatalogCourse {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.CatalogCourse
	for _, c := range s.ListCourses(ctx) {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Title), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) &&
			!strings.Contains(strings.ToLower(c.Instructor), term) {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		if level != "" && c.Level != level {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *catalogService) GetCourseStats(ctx context.Context) models.CourseStats {
	courses, err := s.fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Catalog unavailable, serving empty stats", "error", err)
		return models.CourseStats{}
	}

	var stats models.CourseStats
	var ratingSum float64
	for _, c := range courses {
		stats.TotalCourses++
		if strings.EqualFold(c.Status, string(models.CourseStatusActive)) {
			stats.ActiveCourses++
		}
		stats.TotalStudents += c.EnrolledStudents
		stats.TotalRevenue += c.Revenue
		ratingSum += c.Rating
	}
	if stats.TotalCourses > 0 {
		stats.AverageRating = ratingSum / float64(stats.TotalCourses)
	}
	return stats
}

func (s *catalogService) GetCourseCategories(ctx context.Context) []string {
	return s.distinct(ctx, func(c models.CatalogCourse) string { return c.Category })
}

func (s *catalogService) GetCourseLevels(ctx context.Context) []string {
	return s.distinct(ctx, func(c models.CatalogCourse) string { return c.Level })
}

func (s *catalogService) distinct(ctx context.Context, field func(models.CatalogCourse) string) []string {
	courses, err := s.fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Catalog unavailable, serving no facets", "error", err)
		return []string{}
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range courses {
		v := strings.TrimSpace(field(c))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *catalogService) fetch(ctx context.Context) ([]models.CatalogCourse, error) {
	var cached []models.CatalogCourse
	if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
		return cached, nil
	}

	records, err := s.repo.ListCourseRecords(ctx)
	if err != nil {
		return nil, err
	}
	courses := make([]models.CatalogCourse, 0, len(records))
	for _, r := range records {
		courses = append(courses, remapCourse(r))
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, catalogCacheKey, courses, s.ttl); err != nil {
			s.logger.DebugContext(ctx, "Catalog cache write skipped", "error", err)
		}
	}
	return courses, nil
}

// remapCourse converts backend field names to the catalog shape, preferring
// the backend-specific names and filling gaps with defaults.
func remapCourse(r backend.CourseRecord) models.CatalogCourse {
	c := models.CatalogCourse{
		CourseID:         firstID(r.CourseCode, r.ID),
		Title:            firstNonEmpty(r.CourseName, r.Title),
		Description:      firstNonEmpty(r.CourseDescription, r.Description),
		Instructor:       firstNonEmpty(r.InstructorName, r.Instructor),
		Category:         firstNonEmpty(r.Category, DefaultCategory),
		Level:            firstNonEmpty(r.Level, DefaultLevel),
		Rating:           DefaultRating,
		Image:            firstNonEmpty(r.Image, PlaceholderImage),
		Status:           r.Status,
		EnrolledStudents: r.EnrolledStudents,
		Revenue:          r.Revenue,
	}
	switch {
	case r.CoursePrice != nil:
		c.Price = *r.CoursePrice
	case r.Price != nil:
		c.Price = *r.Price
	}
	if r.Rating != nil {
		c.Rating = *r.Rating
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstID(ids ...models.ID) models.ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}
