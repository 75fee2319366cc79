package validator

import (
	"testing"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionValidator_Sanitize(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name      string
		quizType  models.QuizType
		questions []models.Question
		wantErr   bool
		fields    []string
	}{
		{
			name:     "mcq with answer among options",
			quizType: models.QuizMCQ,
			questions: []models.Question{
				{Text: "Capital of France?", Options: []string{"Paris", "London"}, CorrectAnswer: "Paris"},
			},
		},
		{
			name:     "mcq with answer outside options",
			quizType: models.QuizMCQ,
			questions: []models.Question{
				{Text: "Capital of France?", Options: []string{"Paris", "London"}, CorrectAnswer: "Berlin"},
			},
			wantErr: true,
			fields:  []string{"questions[0].correct_answer"},
		},
		{
			name:     "mcq with a single filled option",
			quizType: models.QuizMCQ,
			questions: []models.Question{
				{Text: "Pick one", Options: []string{"Paris", "  "}, CorrectAnswer: "Paris"},
			},
			wantErr: true,
			fields:  []string{"questions[0].options"},
		},
		{
			name:     "mcq answer pointing at an empty option",
			quizType: models.QuizMCQ,
			questions: []models.Question{
				{Text: "Pick one", Options: []string{"Paris", "London", ""}, CorrectAnswer: ""},
			},
			wantErr: true,
			fields:  []string{"questions[0].correct_answer"},
		},
		{
			name:     "fill blank with placeholder",
			quizType: models.QuizFillBlanks,
			questions: []models.Question{
				{Text: "Capital of France is ___", CorrectAnswer: "Paris"},
			},
		},
		{
			name:     "fill blank without placeholder",
			quizType: models.QuizFillBlanks,
			questions: []models.Question{
				{Text: "Capital of France is Paris", CorrectAnswer: "Paris"},
			},
			wantErr: true,
			fields:  []string{"questions[0].question_text"},
		},
		{
			name:     "true false with unsupported answer",
			quizType: models.QuizTrueFalse,
			questions: []models.Question{
				{Text: "The sky is blue", CorrectAnswer: "maybe"},
			},
			wantErr: true,
			fields:  []string{"questions[0].correct_answer"},
		},
		{
			name:     "subjective needs only text",
			quizType: models.QuizSubjective,
			questions: []models.Question{
				{Text: "Explain recursion"},
			},
		},
		{
			name:     "subjective without text",
			quizType: models.QuizSubjective,
			questions: []models.Question{
				{Text: "   ", ExpectedAnswer: "base case"},
			},
			wantErr: true,
			fields:  []string{"questions[0].question_text"},
		},
		{
			name:      "empty question list",
			quizType:  models.QuizSubjective,
			questions: nil,
			wantErr:   true,
			fields:    []string{"questions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := v.Sanitize(tt.quizType, tt.questions)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, out, len(tt.questions))
				return
			}
			require.Error(t, err)
			assert.Nil(t, out)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.fields, errs.Fields())
		})
	}
}

func TestQuestionValidator_SanitizeAggregatesAllFailures(t *testing.T) {
	v := NewQuestionValidator()

	_, err := v.Sanitize(models.QuizFillBlanks, []models.Question{
		{Text: "ok ___", CorrectAnswer: "fine"},
		{Text: "no blank", CorrectAnswer: "x"},
		{Text: "blank ___", CorrectAnswer: ""},
	})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"questions[1].question_text", "questions[2].correct_answer"}, errs.Fields())
}

func TestQuestionValidator_DuplicateOptions(t *testing.T) {
	v := NewQuestionValidator()

	_, err := v.Sanitize(models.QuizMCQ, []models.Question{
		{Text: "Pick one", Options: []string{"Paris", " Paris "}, CorrectAnswer: "Paris"},
	})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "questions[0].options", errs[0].Field)
	assert.Equal(t, "must be unique", errs[0].Message)
	assert.Equal(t, "Paris", errs[0].Value)
}

func TestNormalizeTrueFalse(t *testing.T) {
	cases := map[string]string{
		"true": "true", "TRUE": "true", "1": "true", "Yes": "true",
		"false": "false", "False": "false", "0": "false", " no ": "false",
	}
	for in, want := range cases {
		got, ok := NormalizeTrueFalse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := NormalizeTrueFalse("y")
	assert.False(t, ok)
}

func TestQuestionValidator_SanitizeNormalizesTrueFalse(t *testing.T) {
	v := NewQuestionValidator()

	out, err := v.Sanitize(models.QuizTrueFalse, []models.Question{
		{Text: "Go has generics", CorrectAnswer: "YES"},
		{Text: "Go has exceptions", CorrectAnswer: "0", ExpectedAnswer: "ignored"},
	})

	require.NoError(t, err)
	assert.Equal(t, "true", out[0].CorrectAnswer)
	assert.Equal(t, "false", out[1].CorrectAnswer)
	assert.Empty(t, out[1].ExpectedAnswer)
}

func TestQuestionValidator_SanitizeDropsEmptyOptions(t *testing.T) {
	v := NewQuestionValidator()

	out, err := v.Sanitize(models.QuizMCQ, []models.Question{
		{Key: "k1", Text: " Largest planet? ", Options: []string{" Jupiter ", "", "Mars"}, CorrectAnswer: "Jupiter"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Jupiter", "Mars"}, out[0].Options)
	assert.Equal(t, "Largest planet?", out[0].Text)
	assert.Equal(t, "k1", out[0].Key)
}
