// Package report formats budgets for terminal output and export.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// DefaultCurrency is the symbol used when none is configured.
const DefaultCurrency = "₱"

// UntitledBudget is shown for budgets with an empty title.
const UntitledBudget = "Untitled Budget"

// FormatMoney renders d rounded to two decimal places behind the currency
// symbol, e.g. "₱1200.50" or "₱-12.00".
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

// DisplayTitle returns the title, or UntitledBudget when it is empty.
func DisplayTitle(b model.Budget) string {
	if b.Title == "" {
		return UntitledBudget
	}
	return b.Title
}

// Summary is the one-line description used in budget listings:
// "<n> expenses • <total>".
func Summary(currency string, b model.Budget) string {
	return fmt.Sprintf("%d expenses • %s", len(b.Expenses), FormatMoney(currency, b.Total()))
}
