package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/course-studio/internal/models"
)

// QuestionValidator handles per-quiz-type question rules
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// NormalizeTrueFalse maps the accepted spellings onto "true" or "false".
func NormalizeTrueFalse(answer string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "true", "1", "yes":
		return "true", true
	case "false", "0", "no":
		return "false", true
	default:
		return "", false
	}
}

// ValidateQuestion checks one question against its quiz type's contract.
func (v *QuestionValidator) ValidateQuestion(quizType models.QuizType, index int, q models.Question) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("questions[%d].%s", index, name) }

	if strings.TrimSpace(q.Text) == "" {
		errs = errs.Add(field("question_text"), "is required", nil)
	}

	switch quizType {
	case models.QuizMCQ:
		errs = append(errs, v.validateMultipleChoice(field, q)...)
	case models.QuizTrueFalse:
		if _, ok := NormalizeTrueFalse(q.CorrectAnswer); !ok {
			errs = errs.Add(field("correct_answer"), "must be true or false", q.CorrectAnswer)
		}
	case models.QuizFillBlanks:
		if !strings.Contains(q.Text, models.BlankPlaceholder) {
			errs = errs.Add(field("question_text"), "must contain the blank placeholder ___", q.Text)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			errs = errs.Add(field("correct_answer"), "is required", nil)
		}
	case models.QuizSubjective:
		// expected answer is optional
	default:
		errs = errs.Add("quiz_type", "unsupported quiz type", string(quizType))
	}

	return errs
}

func (v *QuestionValidator) validateMultipleChoice(field func(string) string, q models.Question) ValidationErrors {
	var errs ValidationErrors

	filled := make(map[string]bool, len(q.Options))
	count := 0
	var duplicate string
	for _, option := range q.Options {
		text := strings.TrimSpace(option)
		if text == "" {
			continue
		}
		count++
		if filled[text] && duplicate == "" {
			duplicate = text
		}
		filled[text] = true
	}

	switch {
	case count < 2:
		errs = errs.Add(field("options"), "must have at least 2 non-empty options", count)
	case duplicate != "":
		errs = errs.Add(field("options"), "must be unique", duplicate)
	}

	answer := strings.TrimSpace(q.CorrectAnswer)
	switch {
	case answer == "":
		errs = errs.Add(field("correct_answer"), "is required", nil)
	case !filled[answer]:
		errs = errs.Add(field("correct_answer"), "must match one of the options", q.CorrectAnswer)
	}

	return errs
}

// Sanitize normalizes a quiz's questions into transport form and validates
// them. Any failure rejects the whole set with one aggregated error.
func (v *QuestionValidator) Sanitize(quizType models.QuizType, questions []models.Question) ([]models.Question, error) {
	var errs ValidationErrors
	if len(questions) == 0 {
		return nil, errs.Add("questions", "must contain at least one question", nil)
	}

	out := make([]models.Question, 0, len(questions))
	for i, q := range questions {
		clean := models.Question{
			Key:            q.Key,
			Text:           strings.TrimSpace(q.Text),
			CorrectAnswer:  strings.TrimSpace(q.CorrectAnswer),
			ExpectedAnswer: strings.TrimSpace(q.ExpectedAnswer),
		}

		switch quizType {
		case models.QuizMCQ:
			for _, option := range q.Options {
				if text := strings.TrimSpace(option); text != "" {
					clean.Options = append(clean.Options, text)
				}
			}
			clean.ExpectedAnswer = ""
		case models.QuizTrueFalse:
			if normalized, ok := NormalizeTrueFalse(q.CorrectAnswer); ok {
				clean.CorrectAnswer = normalized
			}
			clean.ExpectedAnswer = ""
		case models.QuizFillBlanks:
			clean.ExpectedAnswer = ""
		case models.QuizSubjective:
			clean.CorrectAnswer = ""
		}

		errs = append(errs, v.ValidateQuestion(quizType, i, clean)...)
		out = append(out, clean)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}
