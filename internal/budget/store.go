// Package budget owns the persisted collection of budget documents and the
// editor session that mutates the active one.
package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/kv"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/model"
)

// Storage keys.
const (
	BudgetsKey   = "budgets"
	CurrentIDKey = "currentBudgetId"
)

// Store provides read-modify-write access to the budget collection and the
// current-budget pointer.
type Store struct {
	kv  kv.Store
	ids id.Generator
	log *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator overrides the generator used for budget and expense IDs.
func WithIDGenerator(g id.Generator) StoreOption {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore creates a Store on top of a key-value backend.
func NewStore(backend kv.Store, opts ...StoreOption) *Store {
	s := &Store{kv: backend, ids: id.Random{}, log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh identifier from the store's generator.
func (s *Store) NewID() string {
	return s.ids.NewID()
}

// ListAll returns every budget in insertion order. An absent or unreadable
// collection is reported as empty so callers can keep working.
func (s *Store) ListAll() ([]model.Budget, error) {
	raw, err := s.kv.Get(BudgetsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.Budget{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading budgets: %w", err)
	}

	var budgets []model.Budget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		s.log.Warn("budget collection unreadable, treating as empty", "key", BudgetsKey, "error", err)
		return []model.Budget{}, nil
	}
	if budgets == nil {
		budgets = []model.Budget{}
	}
	for i := range budgets {
		if budgets[i].Expenses == nil {
			budgets[i].Expenses = []model.Expense{}
		}
	}
	return budgets, nil
}

// Save overwrites the whole collection.
func (s *Store) Save(budgets []model.Budget) error {
	if budgets == nil {
		budgets = []model.Budget{}
	}
	raw, err := json.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("marshaling budgets: %w", err)
	}
	if err := s.kv.Put(BudgetsKey, raw); err != nil {
		return fmt.Errorf("writing budgets: %w", err)
	}
	s.log.Debug("budgets saved", "count", len(budgets), "bytes", len(raw))
	return nil
}

// Get returns the budget with the given ID.
func (s *Store) Get(budgetID string) (model.Budget, bool, error) {
	budgets, err := s.ListAll()
	if err != nil {
		return model.Budget{}, false, err
	}
	i := indexOf(budgets, budgetID)
	if i == -1 {
		return model.Budget{}, false, nil
	}
	return budgets[i], true, nil
}

// Replace overwrites the stored budget that has b's ID. It reports false and
// writes nothing when no such budget exists.
func (s *Store) Replace(b model.Budget) (bool, error) {
	budgets, err := s.ListAll()
	if err != nil {
		return false, err
	}
	i := indexOf(budgets, b.ID)
	if i == -1 {
		return false, nil
	}
	budgets[i] = b
	if err := s.Save(budgets); err != nil {
		return false, err
	}
	return true, nil
}

// CurrentID returns the persisted current-budget ID, if any. The ID may refer
// to a budget that no longer exists.
func (s *Store) CurrentID() (string, bool, error) {
	raw, err := s.kv.Get(CurrentIDKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading current budget id: %w", err)
	}
	if len(raw) == 0 {
		return "", false, nil
	}
	return string(raw), true, nil
}

// SetCurrentID persists budgetID as the current budget.
func (s *Store) SetCurrentID(budgetID string) error {
	if err := s.kv.Put(CurrentIDKey, []byte(budgetID)); err != nil {
		return fmt.Errorf("writing current budget id: %w", err)
	}
	return nil
}

// ClearCurrentID removes the current-budget pointer.
func (s *Store) ClearCurrentID() error {
	if err := s.kv.Delete(CurrentIDKey); err != nil {
		return fmt.Errorf("clearing current budget id: %w", err)
	}
	return nil
}

// Create appends a new empty budget, persists it, and makes it current.
func (s *Store) Create() (model.Budget, error) {
	budgets, err := s.ListAll()
	if err != nil {
		return model.Budget{}, err
	}

	b := model.NewBudget(s.ids.NewID())
	budgets = append(budgets, b)
	if err := s.Save(budgets); err != nil {
		return model.Budget{}, err
	}
	if err := s.SetCurrentID(b.ID); err != nil {
		return model.Budget{}, err
	}

	s.log.Debug("budget created", "budget_id", b.ID)
	return b.Clone(), nil
}

// Delete removes the budget with the given ID and clears the current ID if it
// pointed at it. Deleting an unknown ID writes nothing.
func (s *Store) Delete(budgetID string) error {
	budgets, err := s.ListAll()
	if err != nil {
		return err
	}

	if i := indexOf(budgets, budgetID); i != -1 {
		budgets = slices.Delete(budgets, i, i+1)
		if err := s.Save(budgets); err != nil {
			return err
		}
		s.log.Debug("budget deleted", "budget_id", budgetID)
	}

	current, ok, err := s.CurrentID()
	if err != nil {
		return err
	}
	if ok && current == budgetID {
		return s.ClearCurrentID()
	}
	return nil
}

// ResetAll removes the collection and the current ID in one step.
func (s *Store) ResetAll() error {
	if err := s.kv.Delete(BudgetsKey, CurrentIDKey); err != nil {
		return fmt.Errorf("resetting budgets: %w", err)
	}
	s.log.Debug("all budgets reset")
	return nil
}

func indexOf(budgets []model.Budget, budgetID string) int {
	return slices.IndexFunc(budgets, func(b model.Budget) bool { return b.ID == budgetID })
}
