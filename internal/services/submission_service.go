package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/validator"
)

type submissionService struct {
	repo        repositories.SubmissionRepository
	assignments repositories.AssignmentRepository
	validator   *validator.Validator
	publisher   events.EventPublisher
	logger      *slog.Logger
	log         *ServiceLogger
}

func NewSubmissionService(repo repositories.SubmissionRepository, assignments repositories.AssignmentRepository, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) SubmissionService {
	return &submissionService{
		repo:        repo,
		assignments: assignments,
		validator:   v,
		publisher:   publisher,
		logger:      logger,
		log:         NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "SubmissionService"}),
	}
}

// Submit uploads a student's work for a published assignment.
func (s *submissionService) Submit(ctx context.Context, student models.CurrentUser, assignmentID models.ID, file *models.FileUpload, comments string) (*models.Submission, error) {
	op := s.log.WithOperation(ctx, "submit_assignment", student.ID)

	if student.Role != models.RoleStudent {
		err := NewPermissionError(student.ID.String(), assignmentID.String(), "assignment", "submit", "only students submit work")
		op.LogResult(assignmentID, "submission", err)
		return nil, err
	}
	if file == nil || file.Content == nil {
		err := fmt.Errorf("%w: %w", ErrFileRequired, ValidationErrors{}.Add("file", "is required", nil))
		op.LogResult(assignmentID, "submission", err)
		return nil, err
	}

	assignment, err := s.assignments.GetAssignment(ctx, assignmentID)
	if err != nil {
		err = upstreamError(err, ErrAssignmentNotFound)
		op.LogResult(assignmentID, "submission", err)
		return nil, err
	}
	if assignment.Status != models.AssignmentPublished {
		err := NewBusinessRuleError("assignment_not_published", "submissions open once the assignment is published",
			map[string]interface{}{"assignment_id": assignmentID, "status": assignment.Status})
		op.LogResult(assignmentID, "submission", err)
		return nil, err
	}

	submission, err := s.repo.SubmitAssignment(ctx, assignmentID, comments, file)
	if err != nil {
		op.LogResult(assignmentID, "submission", err)
		return nil, err
	}
	op.LogResult(submission.ID, "submission", nil)

	event := events.NewEvent(events.EventSubmissionCreated, student.ID, events.SubmissionCreatedEvent{
		SubmissionID: submission.ID,
		AssignmentID: assignmentID,
		StudentID:    student.ID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish submission event", "submission_id", submission.ID, "error", err)
	}
	return submission, nil
}

func (s *submissionService) ListForAssignment(ctx context.Context, user models.CurrentUser, assignmentID models.ID) ([]models.Submission, error) {
	if !user.Role.CanAuthor() {
		return nil, NewPermissionError(user.ID.String(), assignmentID.String(), "submission", "list", "role cannot review submissions")
	}
	submissions, err := s.repo.ListSubmissions(ctx, assignmentID)
	if err != nil {
		return nil, upstreamError(err, ErrAssignmentNotFound)
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}

// Review grades a submission. Marks must lie within [0, MaxPoints] of the
// assignment the submission belongs to.
func (s *submissionService) Review(ctx context.Context, reviewer models.CurrentUser, submissionID models.ID, review *models.Review) (*models.Submission, error) {
	op := s.log.WithOperation(ctx, "review_submission", reviewer.ID)

	if !reviewer.Role.CanAuthor() {
		err := NewPermissionError(reviewer.ID.String(), submissionID.String(), "submission", "review", "role cannot grade")
		op.LogResult(submissionID, "submission", err)
		return nil, err
	}
	if err := s.validator.ValidateStruct(review); err != nil {
		op.LogResult(submissionID, "submission", err)
		return nil, err
	}

	submission, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		err = upstreamError(err, ErrSubmissionNotFound)
		op.LogResult(submissionID, "submission", err)
		return nil, err
	}
	assignment, err := s.assignments.GetAssignment(ctx, submission.AssignmentID)
	if err != nil {
		err = upstreamError(err, ErrAssignmentNotFound)
		op.LogResult(submissionID, "submission", err)
		return nil, err
	}
	if review.Marks > assignment.MaxPoints {
		err := fmt.Errorf("%w: %w", ErrMarksOutOfRange,
			ValidationErrors{}.Add("marks", fmt.Sprintf("must be at most %g", assignment.MaxPoints), review.Marks))
		op.LogResult(submissionID, "submission", err)
		return nil, err
	}

	graded, err := s.repo.GradeSubmission(ctx, submissionID, review)
	err = upstreamError(err, ErrSubmissionNotFound)
	op.LogResult(submissionID, "submission", err)
	if err != nil {
		return nil, err
	}
	op.LogAudit(AuditEventGrade, submissionID, "submission", map[string]interface{}{"marks": review.Marks})

	if err := s.publisher.Publish(ctx, events.NewSubmissionGradedEvent(graded, assignment.MaxPoints, reviewer.ID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish grading event", "submission_id", submissionID, "error", err)
	}
	return graded, nil
}
