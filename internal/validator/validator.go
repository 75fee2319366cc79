package validator

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/go-playground/validator/v10"
)

var lessonDurationPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
	questionValidator *QuestionValidator
	uploadValidator   *UploadValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock lets tests pin "today" for due-date rules.
func NewWithClock(now func() time.Time) *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(now),
		questionValidator: NewQuestionValidator(),
		uploadValidator:   NewUploadValidator(),
	}
}

// ValidateStruct validates struct tags and converts failures to ValidationErrors.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// Business returns the business validator
func (v *Validator) Business() *BusinessValidator {
	return v.businessValidator
}

// Upload returns the upload acceptance validator
func (v *Validator) Upload() *UploadValidator {
	return v.uploadValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("price", validatePrice)
	validate.RegisterValidation("lesson_duration", validateLessonDuration)
	validate.RegisterValidation("quiz_type", validateQuizType)
	validate.RegisterValidation("assignment_type", validateAssignmentType)
	validate.RegisterValidation("assignment_status", validateAssignmentStatus)
	validate.RegisterValidation("user_role", validateUserRole)

	// Date wraps time.Time; validate the inner value so "required" applies.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.Time
		}
		return nil
	}, models.Date{})

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ParsePrice parses editor price text into a finite, non-negative number.
func ParsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}

func validatePrice(fl validator.FieldLevel) bool {
	_, ok := ParsePrice(fl.Field().String())
	return ok
}

// IsLessonDuration reports whether s is formatted as MM:SS.
func IsLessonDuration(s string) bool {
	return lessonDurationPattern.MatchString(s)
}

func validateLessonDuration(fl validator.FieldLevel) bool {
	return IsLessonDuration(fl.Field().String())
}

func validateQuizType(fl validator.FieldLevel) bool {
	switch models.QuizType(fl.Field().String()) {
	case models.QuizMCQ, models.QuizTrueFalse, models.QuizFillBlanks, models.QuizSubjective:
		return true
	}
	return false
}

func validateAssignmentType(fl validator.FieldLevel) bool {
	switch models.AssignmentType(fl.Field().String()) {
	case models.AssignmentExercise, models.AssignmentProject, models.AssignmentQuiz, models.AssignmentEssay:
		return true
	}
	return false
}

func validateAssignmentStatus(fl validator.FieldLevel) bool {
	switch models.AssignmentStatus(fl.Field().String()) {
	case models.AssignmentDraft, models.AssignmentPublished:
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	_, err := models.ParseRole(fl.Field().String())
	return err == nil
}
