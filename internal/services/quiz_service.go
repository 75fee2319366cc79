package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/events"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-studio/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type quizService struct {
	repo      repositories.QuizRepository
	drafts    repositories.QuizDraftRepository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
	log       *ServiceLogger
}

func NewQuizService(repo repositories.QuizRepository, drafts repositories.QuizDraftRepository, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) QuizService {
	return &quizService{
		repo:      repo,
		drafts:    drafts,
		validator: v,
		publisher: publisher,
		logger:    logger,
		log:       NewServiceLogger(logger, LogConfig{Service: "course-studio", Component: "QuizService"}),
	}
}

func (s *quizService) List(ctx context.Context, courseID models.ID) ([]models.Quiz, error) {
	quizzes, err := s.repo.ListQuizzes(ctx, courseID)
	if err != nil {
		return nil, upstreamError(err, ErrCourseNotFound)
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	return quizzes, nil
}

func (s *quizService) Get(ctx context.Context, id models.ID) (*models.Quiz, error) {
	quiz, err := s.repo.GetQuiz(ctx, id)
	if err != nil {
		return nil, upstreamError(err, ErrQuizNotFound)
	}
	return quiz, nil
}

func (s *quizService) Results(ctx context.Context, id models.ID) ([]models.QuizResult, error) {
	results, err := s.repo.QuizResults(ctx, id)
	if err != nil {
		return nil, upstreamError(err, ErrQuizNotFound)
	}
	if results == nil {
		results = []models.QuizResult{}
	}
	return results, nil
}

// Create validates and sanitizes every question before any network call.
func (s *quizService) Create(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.Quiz, error) {
	op := s.log.WithOperation(ctx, "create_quiz", user.ID)

	payload, err := s.buildPayload(user, "", form)
	if err != nil {
		op.LogResult("", "quiz", err)
		return nil, err
	}

	quiz, err := s.repo.CreateQuiz(ctx, payload)
	if err != nil {
		err = upstreamError(err, ErrCourseNotFound)
		op.LogResult("", "quiz", err)
		return nil, err
	}
	op.LogResult(quiz.ID, "quiz", nil)

	if err := s.publisher.Publish(ctx, events.NewQuizCreatedEvent(quiz, user.ID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish quiz event", "quiz_id", quiz.ID, "error", err)
	}
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, user models.CurrentUser, id models.ID, form *models.QuizForm) (*models.Quiz, error) {
	op := s.log.WithOperation(ctx, "update_quiz", user.ID)

	payload, err := s.buildPayload(user, id, form)
	if err != nil {
		op.LogResult(id, "quiz", err)
		return nil, err
	}

	quiz, err := s.repo.UpdateQuiz(ctx, id, payload)
	err = upstreamError(err, ErrQuizNotFound)
	op.LogResult(id, "quiz", err)
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// ChangeType switches the quiz type. Questions do not carry over between
// types, so a form that already has questions needs explicit confirmation.
func (s *quizService) ChangeType(form *models.QuizForm, newType models.QuizType, confirmed bool) error {
	if !isQuizType(newType) {
		return ValidationErrors{}.Add("quiz_type", "must be one of: mcq true_false fill_blanks subjective", newType)
	}
	if form.QuizType == newType {
		return nil
	}
	if hasContent(form.Questions) && !confirmed {
		return ErrQuizTypeChangeUnconfirmed
	}
	form.QuizType = newType
	form.Questions = []models.Question{blankQuestion(newType)}
	return nil
}

func (s *quizService) SanitizeQuestions(quizType models.QuizType, questions []models.Question) ([]models.Question, error) {
	return s.validator.Question().Sanitize(quizType, questions)
}

// NewQuestion returns an empty question with a transient key for editors.
func (s *quizService) NewQuestion() models.Question {
	return models.Question{Key: uuid.NewString()}
}

func (s *quizService) buildPayload(user models.CurrentUser, id models.ID, form *models.QuizForm) (*backend.QuizPayload, error) {
	if !user.Role.CanAuthor() {
		return nil, NewPermissionError(user.ID.String(), id.String(), "quiz", "write", "role cannot author quizzes")
	}

	var verrs ValidationErrors
	if err := s.validator.ValidateStruct(form); err != nil {
		if !errors.As(err, &verrs) {
			return nil, err
		}
	}

	var questions []models.Question
	if isQuizType(form.QuizType) && len(form.Questions) > 0 {
		sanitized, err := s.SanitizeQuestions(form.QuizType, form.Questions)
		var qerrs ValidationErrors
		switch {
		case errors.As(err, &qerrs):
			verrs = append(verrs, qerrs...)
		case err != nil:
			return nil, err
		}
		questions = sanitized
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	return &backend.QuizPayload{
		CourseID:        form.CourseID,
		Title:           form.Title,
		Description:     form.Description,
		Guidelines:      form.Guidelines,
		QuizType:        form.QuizType,
		DurationMinutes: form.DurationMinutes,
		MaxAttempts:     form.MaxAttempts,
		Questions:       questions,
		IsActive:        form.IsActive,
	}, nil
}

// ===== DRAFTS =====

// SaveDraft stores an unfinished quiz without validating it.
func (s *quizService) SaveDraft(ctx context.Context, user models.CurrentUser, form *models.QuizForm) (*models.QuizDraft, error) {
	if !user.Role.CanAuthor() {
		return nil, NewPermissionError(user.ID.String(), "", "quiz_draft", "create", "role cannot author quizzes")
	}
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz draft: %w", err)
	}
	draft := &models.QuizDraft{
		ID:       uuid.NewString(),
		OwnerID:  user.ID,
		CourseID: form.CourseID,
		QuizType: form.QuizType,
		Payload:  datatypes.JSON(payload),
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft decodes a draft back into a form. Questions get fresh keys since
// keys are never persisted.
func (s *quizService) GetDraft(ctx context.Context, user models.CurrentUser, id string) (*models.QuizForm, error) {
	draft, err := s.ownedDraft(ctx, user, id, "read")
	if err != nil {
		return nil, err
	}
	var form models.QuizForm
	if err := json.Unmarshal(draft.Payload, &form); err != nil {
		return nil, fmt.Errorf("failed to decode quiz draft %s: %w", id, err)
	}
	for i := range form.Questions {
		form.Questions[i].Key = uuid.NewString()
	}
	return &form, nil
}

func (s *quizService) UpdateDraft(ctx context.Context, user models.CurrentUser, id string, form *models.QuizForm) (*models.QuizDraft, error) {
	draft, err := s.ownedDraft(ctx, user, id, "update")
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz draft: %w", err)
	}
	draft.CourseID = form.CourseID
	draft.QuizType = form.QuizType
	draft.Payload = datatypes.JSON(payload)
	if err := s.drafts.Update(ctx, draft); err != nil {
		return nil, s.draftError(err)
	}
	return draft, nil
}

func (s *quizService) ownedDraft(ctx context.Context, user models.CurrentUser, id, action string) (*models.QuizDraft, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, s.draftError(err)
	}
	if draft.OwnerID != user.ID {
		return nil, NewPermissionError(user.ID.String(), id, "quiz_draft", action, "drafts are private to their author")
	}
	return draft, nil
}

func (s *quizService) draftError(err error) error {
	if errors.Is(err, postgres.ErrDraftNotFound) {
		return fmt.Errorf("%w: %w", ErrQuizDraftNotFound, err)
	}
	return err
}

func isQuizType(t models.QuizType) bool {
	switch t {
	case models.QuizMCQ, models.QuizTrueFalse, models.QuizFillBlanks, models.QuizSubjective:
		return true
	default:
		return false
	}
}

func hasContent(questions []models.Question) bool {
	for _, q := range questions {
		if q.Text != "" || q.CorrectAnswer != "" || q.ExpectedAnswer != "" {
			return true
		}
		for _, o := range q.Options {
			if o != "" {
				return true
			}
		}
	}
	return false
}

func blankQuestion(t models.QuizType) models.Question {
	q := models.Question{Key: uuid.NewString()}
	if t == models.QuizMCQ {
		q.Options = []string{"", ""}
	}
	return q
}
