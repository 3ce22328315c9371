package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Budget is one budget document: a salary and an ordered list of expenses.
type Budget struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Salary   Amount    `json:"salary"`
	Expenses []Expense `json:"expenses"`
	Locked   bool      `json:"locked"`
}

// Expense is a single named amount within a budget.
type Expense struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

// NewBudget returns an empty, unlocked budget with a zero salary.
func NewBudget(id string) Budget {
	return Budget{
		ID:       id,
		Salary:   AmountOf(decimal.Zero),
		Expenses: []Expense{},
	}
}

// Total sums all expense amounts. Blank amounts count as zero.
func (b Budget) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range b.Expenses {
		total = total.Add(e.Amount.Decimal())
	}
	return total
}

// Balance is salary minus Total.
func (b Budget) Balance() decimal.Decimal {
	return b.Salary.Decimal().Sub(b.Total())
}

// ExpenseIndex returns the position of the expense with the given ID, or -1.
func (b Budget) ExpenseIndex(expenseID string) int {
	return slices.IndexFunc(b.Expenses, func(e Expense) bool { return e.ID == expenseID })
}

// Clone returns a copy that shares no mutable state with b.
func (b Budget) Clone() Budget {
	c := b
	c.Expenses = slices.Clone(b.Expenses)
	if c.Expenses == nil {
		c.Expenses = []Expense{}
	}
	return c
}
