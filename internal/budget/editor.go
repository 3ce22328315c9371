package budget

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Actions reported to a Recorder.
const (
	ActionCreate        = "create"
	ActionRename        = "rename"
	ActionSalary        = "salary"
	ActionAddExpense    = "add_expense"
	ActionExpenseName   = "expense_name"
	ActionExpenseAmount = "expense_amount"
	ActionDeleteExpense = "delete_expense"
	ActionLock          = "lock"
	ActionUnlock        = "unlock"
	ActionDelete        = "delete"
	ActionReset         = "reset"
)

// Recorder receives a note for every mutation that reached storage.
type Recorder interface {
	Record(action, budgetID, details string)
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithRecorder attaches an activity recorder.
func WithRecorder(r Recorder) EditorOption {
	return func(e *Editor) { e.recorder = r }
}

// Editor is a session holding the active budget. Every mutation writes the
// active budget back through the Store before returning. Operations other
// than Load, CreateBudget and ResetAll do nothing when no budget is active.
type Editor struct {
	store    *Store
	active   *model.Budget
	recorder Recorder
}

// NewEditor creates an Editor with no active budget.
func NewEditor(store *Store, opts ...EditorOption) *Editor {
	e := &Editor{store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Active returns a copy of the active budget.
func (e *Editor) Active() (model.Budget, bool) {
	if e.active == nil {
		return model.Budget{}, false
	}
	return e.active.Clone(), true
}

// Store returns the underlying Store.
func (e *Editor) Store() *Store {
	return e.store
}

// Load makes the budget with the given ID active and current. It reports
// false and changes nothing if the budget does not exist.
func (e *Editor) Load(budgetID string) (bool, error) {
	b, ok, err := e.store.Get(budgetID)
	if err != nil || !ok {
		return false, err
	}
	if err := e.store.SetCurrentID(b.ID); err != nil {
		return false, err
	}
	e.active = &b
	return true, nil
}

// Restore loads the persisted current budget, if it still exists.
func (e *Editor) Restore() error {
	current, ok, err := e.store.CurrentID()
	if err != nil || !ok {
		return err
	}
	_, err = e.Load(current)
	return err
}

// CreateBudget creates a new budget and makes it active.
func (e *Editor) CreateBudget() (model.Budget, error) {
	b, err := e.store.Create()
	if err != nil {
		return model.Budget{}, err
	}
	if _, err := e.Load(b.ID); err != nil {
		return model.Budget{}, err
	}
	e.record(ActionCreate, "")
	return b, nil
}

// Rename sets the title verbatim.
func (e *Editor) Rename(title string) error {
	if e.active == nil {
		return nil
	}
	e.active.Title = title
	return e.persistActive(ActionRename, title)
}

// SetSalary parses text as a number (0 when unparsable) and stores it.
func (e *Editor) SetSalary(text string) error {
	if e.active == nil {
		return nil
	}
	e.active.Salary = model.AmountOf(model.ParseNumber(text))
	return e.persistActive(ActionSalary, e.active.Salary.String())
}

// AddExpense appends an expense with the given name and a blank amount and
// returns its ID.
func (e *Editor) AddExpense(name string) (string, error) {
	if e.active == nil {
		return "", nil
	}
	if e.active.Locked {
		return "", ErrLocked
	}
	exp := model.Expense{ID: e.store.NewID(), Name: name, Amount: model.Blank()}
	e.active.Expenses = append(e.active.Expenses, exp)
	if err := e.persistActive(ActionAddExpense, exp.ID); err != nil {
		return "", err
	}
	return exp.ID, nil
}

// UpdateExpenseName stores the upper-cased name. Unknown IDs are ignored.
func (e *Editor) UpdateExpenseName(expenseID, text string) error {
	exp, err := e.expense(expenseID)
	if exp == nil || err != nil {
		return err
	}
	exp.Name = strings.ToUpper(text)
	return e.persistActive(ActionExpenseName, expenseID)
}

// UpdateExpenseAmount stores a blank amount for "" and a coerced number
// otherwise. Unknown IDs are ignored.
func (e *Editor) UpdateExpenseAmount(expenseID, text string) error {
	exp, err := e.expense(expenseID)
	if exp == nil || err != nil {
		return err
	}
	exp.Amount = model.ParseAmount(text)
	return e.persistActive(ActionExpenseAmount, fmt.Sprintf("%s=%q", expenseID, exp.Amount.String()))
}

// DeleteExpense removes the expense. Unknown IDs are ignored.
func (e *Editor) DeleteExpense(expenseID string) error {
	exp, err := e.expense(expenseID)
	if exp == nil || err != nil {
		return err
	}
	e.active.Expenses = slices.DeleteFunc(e.active.Expenses, func(x model.Expense) bool {
		return x.ID == expenseID
	})
	return e.persistActive(ActionDeleteExpense, expenseID)
}

// Lock marks the budget finalized. It returns a *LockError and changes
// nothing if any expense has a blank name.
func (e *Editor) Lock() error {
	if e.active == nil {
		return nil
	}
	if problems := ValidateLock(*e.active); len(problems) > 0 {
		return &LockError{Problems: problems}
	}
	e.active.Locked = true
	return e.persistActive(ActionLock, "")
}

// Unlock clears the locked flag.
func (e *Editor) Unlock() error {
	if e.active == nil {
		return nil
	}
	e.active.Locked = false
	return e.persistActive(ActionUnlock, "")
}

// Total returns the sum of the active budget's expenses.
func (e *Editor) Total() decimal.Decimal {
	if e.active == nil {
		return decimal.Zero
	}
	return e.active.Total()
}

// Balance returns salary minus Total for the active budget.
func (e *Editor) Balance() decimal.Decimal {
	if e.active == nil {
		return decimal.Zero
	}
	return e.active.Balance()
}

// DeleteActive deletes the active budget and leaves no budget active.
func (e *Editor) DeleteActive() error {
	if e.active == nil {
		return nil
	}
	budgetID := e.active.ID
	if err := e.store.Delete(budgetID); err != nil {
		return err
	}
	e.active = nil
	if e.recorder != nil {
		e.recorder.Record(ActionDelete, budgetID, "")
	}
	return nil
}

// ResetAll deletes every budget and leaves no budget active.
func (e *Editor) ResetAll() error {
	if err := e.store.ResetAll(); err != nil {
		return err
	}
	e.active = nil
	if e.recorder != nil {
		e.recorder.Record(ActionReset, "", "")
	}
	return nil
}

// expense finds an expense in the active budget. It returns nil when nothing
// is active or the ID is unknown, and ErrLocked when the budget is locked.
func (e *Editor) expense(expenseID string) (*model.Expense, error) {
	if e.active == nil {
		return nil, nil
	}
	i := e.active.ExpenseIndex(expenseID)
	if i == -1 {
		return nil, nil
	}
	if e.active.Locked {
		return nil, ErrLocked
	}
	return &e.active.Expenses[i], nil
}

// persistActive writes the active budget into its slot in the stored
// collection. Every mutating operation ends here.
func (e *Editor) persistActive(action, details string) error {
	ok, err := e.store.Replace(*e.active)
	if err != nil {
		return fmt.Errorf("saving budget %s: %w", e.active.ID, err)
	}
	if !ok {
		e.store.log.Warn("active budget missing from collection, change not saved", "budget_id", e.active.ID)
		return nil
	}
	e.record(action, details)
	return nil
}

func (e *Editor) record(action, details string) {
	if e.recorder == nil || e.active == nil {
		return
	}
	e.recorder.Record(action, e.active.ID, details)
}
