package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	coursesSheet = "Courses"
	statsSheet   = "Summary"
	resultsSheet = "Results"
)

type exportService struct {
	catalog CatalogService
	quizzes QuizService
	logger  *slog.Logger
}

func NewExportService(catalog CatalogService, quizzes QuizService, logger *slog.Logger) ExportService {
	return &exportService{
		catalog: catalog,
		quizzes: quizzes,
		logger:  logger,
	}
}

// ExportCatalog writes the course listing and its aggregate stats to xlsx.
func (s *exportService) ExportCatalog(ctx context.Context) ([]byte, error) {
	courses := s.catalog.ListCourses(ctx)
	stats := s.catalog.GetCourseStats(ctx)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", coursesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{
		"Course ID", "Title", "Instructor", "Category", "Level",
		"Price", "Rating", "Status", "Enrolled Students", "Revenue",
	}
	rows := make([][]interface{}, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []interface{}{
			c.CourseID.String(), c.Title, c.Instructor, c.Category, c.Level,
			c.Price, c.Rating, c.Status, c.EnrolledStudents, c.Revenue,
		})
	}
	if err := writeTable(f, coursesSheet, headers, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Total Courses", stats.TotalCourses},
		{"Active Courses", stats.ActiveCourses},
		{"Total Students", stats.TotalStudents},
		{"Total Revenue", stats.TotalRevenue},
		{"Average Rating", stats.AverageRating},
	}
	if err := writeTable(f, statsSheet, []interface{}{"Metric", "Value"}, summary); err != nil {
		return nil, err
	}

	return writeWorkbook(f)
}

func (s *exportService) ExportQuizResults(ctx context.Context, quizID models.ID) ([]byte, error) {
	results, err := s.quizzes.Results(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{"Student ID", "Student Name", "Attempt", "Score", "Max Score", "Percentage", "Submitted At"}
	rows := make([][]interface{}, 0, len(results))
	for _, r := range results {
		var pct float64
		if r.MaxScore > 0 {
			pct = r.Score * 100 / r.MaxScore
		}
		submitted := ""
		if r.SubmittedAt != nil {
			submitted = r.SubmittedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []interface{}{
			r.StudentID.String(), r.StudentName, r.Attempt, r.Score, r.MaxScore, pct, submitted,
		})
	}
	if err := writeTable(f, resultsSheet, headers, rows); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Exported quiz results", "quiz_id", quizID, "rows", len(rows))
	return writeWorkbook(f)
}

func writeTable(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s headers: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeWorkbook(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
