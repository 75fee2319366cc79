package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubmissionServiceForTest() (*MockSubmissionRepository, *MockAssignmentRepository, *events.MockEventPublisher, SubmissionService) {
	repo := new(MockSubmissionRepository)
	assignments := new(MockAssignmentRepository)
	pub := events.NewMockEventPublisher(discardLogger())
	return repo, assignments, pub, NewSubmissionService(repo, assignments, validator.New(), pub, discardLogger())
}

func TestSubmissionService_Submit(t *testing.T) {
	file := &models.FileUpload{Name: "answer.zip", Size: 3, Content: bytes.NewReader([]byte("zip"))}

	t.Run("published assignment accepts work", func(t *testing.T) {
		repo, assignments, pub, svc := newSubmissionServiceForTest()
		ctx := context.Background()

		assignments.On("GetAssignment", ctx, models.ID("a1")).Return(&models.Assignment{ID: "a1", Status: models.AssignmentPublished}, nil)
		repo.On("SubmitAssignment", ctx, models.ID("a1"), "done", file).Return(&models.Submission{ID: "s1", AssignmentID: "a1"}, nil)

		sub, err := svc.Submit(ctx, student, "a1", file, "done")

		require.NoError(t, err)
		assert.Equal(t, models.ID("s1"), sub.ID)
		published := pub.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventSubmissionCreated, published[0].Type)
	})

	t.Run("draft assignment is closed", func(t *testing.T) {
		repo, assignments, _, svc := newSubmissionServiceForTest()
		ctx := context.Background()

		assignments.On("GetAssignment", ctx, models.ID("a1")).Return(&models.Assignment{ID: "a1", Status: models.AssignmentDraft}, nil)

		_, err := svc.Submit(ctx, student, "a1", file, "")

		assert.True(t, IsBusinessRule(err))
		repo.AssertNotCalled(t, "SubmitAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("file is required", func(t *testing.T) {
		_, assignments, _, svc := newSubmissionServiceForTest()

		_, err := svc.Submit(context.Background(), student, "a1", nil, "")

		assert.ErrorIs(t, err, ErrFileRequired)
		assert.True(t, IsValidation(err))
		assignments.AssertNotCalled(t, "GetAssignment", mock.Anything, mock.Anything)
	})

	t.Run("only students submit", func(t *testing.T) {
		_, _, _, svc := newSubmissionServiceForTest()

		_, err := svc.Submit(context.Background(), instructor, "a1", file, "")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestSubmissionService_Review(t *testing.T) {
	tests := []struct {
		name    string
		marks   float64
		wantErr error
	}{
		{name: "zero marks", marks: 0},
		{name: "full marks", marks: 50},
		{name: "above max", marks: 50.5, wantErr: ErrMarksOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, assignments, pub, svc := newSubmissionServiceForTest()
			ctx := context.Background()
			review := &models.Review{Marks: tt.marks, InstructorComments: "ok"}

			repo.On("GetSubmission", ctx, models.ID("s1")).Return(&models.Submission{ID: "s1", AssignmentID: "a1"}, nil)
			assignments.On("GetAssignment", ctx, models.ID("a1")).Return(&models.Assignment{ID: "a1", MaxPoints: 50}, nil)
			repo.On("GradeSubmission", ctx, models.ID("s1"), review).Return(&models.Submission{ID: "s1", AssignmentID: "a1", Marks: &tt.marks}, nil).Maybe()

			graded, err := svc.Review(ctx, instructor, "s1", review)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "GradeSubmission", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.marks, *graded.Marks)
			published := pub.GetPublishedEvents()
			require.Len(t, published, 1)
			assert.Equal(t, events.EventSubmissionGraded, published[0].Type)
		})
	}
}

func TestSubmissionService_Review_NegativeMarks(t *testing.T) {
	repo, _, _, svc := newSubmissionServiceForTest()

	_, err := svc.Review(context.Background(), instructor, "s1", &models.Review{Marks: -1})

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"marks"}, verrs.Fields())
	repo.AssertNotCalled(t, "GetSubmission", mock.Anything, mock.Anything)
}

func TestSubmissionService_ListForAssignment_StudentsForbidden(t *testing.T) {
	repo, _, _, svc := newSubmissionServiceForTest()

	_, err := svc.ListForAssignment(context.Background(), student, "a1")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "ListSubmissions", mock.Anything, mock.Anything)
}
