package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// ErrLocked is returned when an expense edit is attempted on a locked budget.
var ErrLocked = errors.New("budget is locked")

// ValidationError describes one expense that blocks locking.
type ValidationError struct {
	Index       int // 1-based position in the expense list
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("expense %d [%s]: %s", e.Index, e.ExpenseID, e.Description)
}

// LockError is returned by Editor.Lock when validation fails.
type LockError struct {
	Problems []ValidationError
}

func (e *LockError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "cannot lock budget: " + strings.Join(msgs, "; ")
}

// ValidateLock checks that every expense has a name once whitespace is
// trimmed.
func ValidateLock(b model.Budget) []ValidationError {
	var errs []ValidationError
	for i, e := range b.Expenses {
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, ValidationError{
				Index:       i + 1,
				ExpenseID:   e.ID,
				Description: "name is empty",
			})
		}
	}
	return errs
}
