package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// Header is the CSV header written by WriteExpensesCSV.
const Header = "expense_id,name,amount"

const (
	numFields = 3
	colID     = 0
	colName   = 1
	colAmount = 2
)

// MarshalExpense converts an Expense to a CSV row. Blank amounts stay empty.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colName] = e.Name
	if !e.Amount.IsBlank() {
		row[colAmount] = e.Amount.Decimal().StringFixed(2)
	}
	return row
}

// WriteExpensesCSV writes the expenses of b, one row each.
func WriteExpensesCSV(w io.Writer, b model.Budget) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range b.Expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
