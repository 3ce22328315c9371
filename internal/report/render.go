package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
}

// stylesFor picks styles for w; non-terminal writers get plain text.
func stylesFor(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		label: r.NewStyle().Faint(true),
	}
}

// Options controls RenderBudget.
type Options struct {
	Currency    string
	ShowBalance bool
}

// RenderBudget writes a human-readable view of b.
func RenderBudget(w io.Writer, b model.Budget, opts Options) error {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	st := stylesFor(w)
	var sb strings.Builder
	sb.WriteString(st.title.Render(DisplayTitle(b)))
	if b.Locked {
		sb.WriteString(" " + st.label.Render("[locked]"))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", st.label.Render("Salary:"), FormatMoney(currency, b.Salary.Decimal()))

	if len(b.Expenses) == 0 {
		sb.WriteString("No expenses added yet\n")
	} else {
		sb.WriteString(st.label.Render("Expenses:") + "\n")
		width := nameWidth(b.Expenses)
		for i, e := range b.Expenses {
			fmt.Fprintf(&sb, "  %2d. %-8s  %-*s  %s\n", i+1, id.Short(e.ID), width, e.Name, amountCell(currency, e.Amount, b.Locked))
		}
	}

	fmt.Fprintf(&sb, "%s %s\n", st.label.Render("Total:"), FormatMoney(currency, b.Total()))
	if opts.ShowBalance {
		fmt.Fprintf(&sb, "%s %s\n", st.label.Render("Remaining balance:"), FormatMoney(currency, b.Balance()))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderList writes one line per budget, marking the current one with '*'.
func RenderList(w io.Writer, budgets []model.Budget, currentID, currency string) error {
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(budgets) == 0 {
		_, err := io.WriteString(w, "No budget files yet\n")
		return err
	}

	st := stylesFor(w)
	var sb strings.Builder
	for _, b := range budgets {
		marker := " "
		if b.ID == currentID {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-8s  %s  %s\n", marker, id.Short(b.ID), st.title.Render(DisplayTitle(b)), st.label.Render(Summary(currency, b)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func amountCell(currency string, a model.Amount, locked bool) string {
	if a.IsBlank() && !locked {
		return "-"
	}
	return FormatMoney(currency, a.Decimal())
}

func nameWidth(expenses []model.Expense) int {
	width := 0
	for _, e := range expenses {
		width = max(width, lipgloss.Width(e.Name))
	}
	return width
}
