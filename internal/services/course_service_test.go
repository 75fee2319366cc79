package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/cache"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	instructor = models.CurrentUser{ID: "7", Name: "Ada", Role: models.RoleInstructor}
	admin      = models.CurrentUser{ID: "1", Name: "Root", Role: models.RoleAdmin}
	student    = models.CurrentUser{ID: "42", Name: "Sam", Role: models.RoleStudent}
)

func validCourseForm() *models.CourseForm {
	return &models.CourseForm{
		Title:       "Go Basics",
		Description: "Types, slices and goroutines",
		Category:    "Programming",
		Price:       "49.99",
	}
}

func newCourseServiceForTest() (*MockCourseRepository, *events.MockEventPublisher, CourseService) {
	repo := new(MockCourseRepository)
	pub := events.NewMockEventPublisher(discardLogger())
	return repo, pub, NewCourseService(repo, validator.New(), pub, cache.NoopCache{}, discardLogger())
}

func TestCourseService_Submit_InstructorAlwaysAuthorsAsSelf(t *testing.T) {
	repo, pub, svc := newCourseServiceForTest()
	ctx := context.Background()

	form := validCourseForm()
	form.InstructorID = "999"

	repo.On("CreateCourse", ctx, mock.MatchedBy(func(p *backend.CoursePayload) bool {
		return p.InstructorID == instructor.ID &&
			p.Status == models.CourseStatusPending &&
			p.Published != nil && !*p.Published &&
			p.Price == 49.99
	})).Return(&models.Course{ID: "c1", Title: form.Title, InstructorID: instructor.ID, Status: models.CourseStatusPending}, nil)

	course, err := svc.Submit(ctx, instructor, form)

	require.NoError(t, err)
	assert.Equal(t, models.ID("c1"), course.ID)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "ListInstructors", mock.Anything)

	published := pub.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventCourseCreated, published[0].Type)
}

func TestCourseService_Submit_AdminMustPickInstructor(t *testing.T) {
	repo, _, svc := newCourseServiceForTest()

	_, err := svc.Submit(context.Background(), admin, validCourseForm())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInstructorRequired)
	assert.True(t, IsValidation(err))
	repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
}

func TestCourseService_Submit_AdminWithKnownInstructor(t *testing.T) {
	repo, _, svc := newCourseServiceForTest()
	ctx := context.Background()

	form := validCourseForm()
	form.InstructorID = "7"

	repo.On("ListInstructors", ctx).Return([]models.Instructor{{ID: "7", Name: "Ada"}}, nil)
	repo.On("CreateCourse", ctx, mock.MatchedBy(func(p *backend.CoursePayload) bool {
		return p.InstructorID == "7"
	})).Return(&models.Course{ID: "c2"}, nil)

	_, err := svc.Submit(ctx, admin, form)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCourseService_Submit_AdminWithUnknownInstructor(t *testing.T) {
	repo, _, svc := newCourseServiceForTest()
	ctx := context.Background()

	form := validCourseForm()
	form.InstructorID = "404"
	repo.On("ListInstructors", ctx).Return([]models.Instructor{{ID: "7"}}, nil)

	_, err := svc.Submit(ctx, admin, form)

	assert.ErrorIs(t, err, ErrUnknownInstructor)
	repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
}

func TestCourseService_Submit_RejectsStudents(t *testing.T) {
	repo, _, svc := newCourseServiceForTest()

	_, err := svc.Submit(context.Background(), student, validCourseForm())

	var pe *PermissionError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
}

func TestCourseService_Submit_InvalidForm(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(f *models.CourseForm)
		field string
	}{
		{name: "blank title", mut: func(f *models.CourseForm) { f.Title = "   " }, field: "title"},
		{name: "negative price", mut: func(f *models.CourseForm) { f.Price = "-1" }, field: "price"},
		{name: "non numeric price", mut: func(f *models.CourseForm) { f.Price = "free" }, field: "price"},
		{name: "missing category", mut: func(f *models.CourseForm) { f.Category = "" }, field: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newCourseServiceForTest()
			form := validCourseForm()
			tt.mut(form)

			_, err := svc.Submit(context.Background(), instructor, form)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.Fields(), tt.field)
			repo.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
		})
	}
}

func TestCourseService_Update_MapsMissingCourse(t *testing.T) {
	repo, _, svc := newCourseServiceForTest()
	ctx := context.Background()

	repo.On("UpdateCourse", ctx, models.ID("c9"), mock.Anything).
		Return(nil, &backend.APIError{StatusCode: http.StatusNotFound, Message: "not found"})

	_, err := svc.Update(ctx, instructor, "c9", validCourseForm())

	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCourseService_Delete(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		repo, _, svc := newCourseServiceForTest()

		err := svc.Delete(context.Background(), instructor, "c1", false)

		assert.ErrorIs(t, err, ErrDeleteUnconfirmed)
		repo.AssertNotCalled(t, "DeleteCourse", mock.Anything, mock.Anything)
	})

	t.Run("confirmed delete publishes event", func(t *testing.T) {
		repo, pub, svc := newCourseServiceForTest()
		ctx := context.Background()
		repo.On("DeleteCourse", ctx, models.ID("c1")).Return(nil)

		err := svc.Delete(ctx, instructor, "c1", true)

		require.NoError(t, err)
		published := pub.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventCourseDeleted, published[0].Type)
	})
}

func TestCourseService_WritesInvalidateCatalogCache(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(repo *MockCourseRepository)
		write      func(ctx context.Context, svc CourseService) error
		wantFetches int
	}{
		{
			name: "submit",
			setup: func(repo *MockCourseRepository) {
				repo.On("CreateCourse", mock.Anything, mock.Anything).Return(&models.Course{ID: "c1", InstructorID: instructor.ID}, nil)
			},
			write: func(ctx context.Context, svc CourseService) error {
				_, err := svc.Submit(ctx, instructor, validCourseForm())
				return err
			},
			wantFetches: 2,
		},
		{
			name: "update",
			setup: func(repo *MockCourseRepository) {
				repo.On("UpdateCourse", mock.Anything, models.ID("c1"), mock.Anything).Return(&models.Course{ID: "c1"}, nil)
			},
			write: func(ctx context.Context, svc CourseService) error {
				_, err := svc.Update(ctx, instructor, "c1", validCourseForm())
				return err
			},
			wantFetches: 2,
		},
		{
			name: "delete",
			setup: func(repo *MockCourseRepository) {
				repo.On("DeleteCourse", mock.Anything, models.ID("c1")).Return(nil)
			},
			write: func(ctx context.Context, svc CourseService) error {
				return svc.Delete(ctx, instructor, "c1", true)
			},
			wantFetches: 2,
		},
		{
			name:  "unconfirmed delete keeps cache",
			setup: func(repo *MockCourseRepository) {},
			write: func(ctx context.Context, svc CourseService) error {
				err := svc.Delete(ctx, instructor, "c1", false)
				if errors.Is(err, ErrDeleteUnconfirmed) {
					return nil
				}
				return err
			},
			wantFetches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			shared := &memoryCache{entries: map[string][]byte{}}

			catalogRepo := new(MockCatalogRepository)
			catalogRepo.On("ListCourseRecords", ctx).Return(catalogRecords(), nil)
			catalog := NewCatalogService(catalogRepo, shared, time.Minute, discardLogger())

			repo := new(MockCourseRepository)
			tt.setup(repo)
			pub := events.NewMockEventPublisher(discardLogger())
			svc := NewCourseService(repo, validator.New(), pub, shared, discardLogger())

			catalog.ListCourses(ctx)
			catalog.ListCourses(ctx)
			catalogRepo.AssertNumberOfCalls(t, "ListCourseRecords", 1)

			require.NoError(t, tt.write(ctx, svc))
			catalog.ListCourses(ctx)

			catalogRepo.AssertNumberOfCalls(t, "ListCourseRecords", tt.wantFetches)
		})
	}
}
