package validator

import (
	"time"
)

// BusinessValidator checks rules that depend on the current date.
type BusinessValidator struct {
	now func() time.Time
}

func NewBusinessValidator(now func() time.Time) *BusinessValidator {
	if now == nil {
		now = time.Now
	}
	return &BusinessValidator{now: now}
}

// ValidateDueDate accepts any date on or after today, compared by calendar day
// in the due date's own location.
func (b *BusinessValidator) ValidateDueDate(due time.Time) ValidationErrors {
	var errs ValidationErrors
	if due.IsZero() {
		return errs.Add("due_date", "is required", nil)
	}
	today := truncateToDay(b.now().In(due.Location()))
	if truncateToDay(due).Before(today) {
		errs = errs.Add("due_date", "must not be in the past", due.Format("2006-01-02"))
	}
	return errs
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
