package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/budget"
	"github.com/tally-dev/tally/internal/id"
)

func newExpenseCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"exp"},
		Short:   "Edit the current budget's expenses",
	}

	cmd.AddCommand(
		newExpenseAddCommand(opts),
		newExpenseQuickCommand(opts),
		newExpenseNameCommand(opts),
		newExpenseAmountCommand(opts),
		newExpenseRemoveCommand(opts),
	)

	return cmd
}

func newExpenseAddCommand(opts *rootOptions) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Append an expense",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typed := ""
			if len(args) > 0 {
				typed = args[0]
			}
			return withSession(cmd, opts, func(s *session) error {
				return addExpense(cmd, s, "", typed, amount)
			})
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "initial amount")

	return cmd
}

func newExpenseQuickCommand(opts *rootOptions) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "quick <preset>",
		Short: "Append an expense named after a quick-add preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				name, ok := s.presets.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(s.presets.All(), ", "))
				}
				return addExpense(cmd, s, name, "", amount)
			})
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "initial amount")

	return cmd
}

// addExpense appends an expense named preset verbatim, then applies a typed
// name and amount the same way the name and amount commands do.
func addExpense(cmd *cobra.Command, s *session, preset, typed, amount string) error {
	if _, err := s.active(); err != nil {
		return err
	}
	expenseID, err := s.editor.AddExpense(preset)
	if err != nil {
		return lockedHint(err)
	}
	if typed != "" {
		if err := s.editor.UpdateExpenseName(expenseID, typed); err != nil {
			return err
		}
	}
	if amount != "" {
		if err := s.editor.UpdateExpenseAmount(expenseID, amount); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s\n", id.Short(expenseID))
	return nil
}

func newExpenseNameCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "name <expense-id> <name>",
		Short: "Rename an expense (stored upper-case)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				expenseID, err := s.resolveExpense(args[0])
				if err != nil {
					return err
				}
				return lockedHint(s.editor.UpdateExpenseName(expenseID, args[1]))
			})
		},
	}
}

func newExpenseAmountCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "amount <expense-id> [amount]",
		Short: "Set an expense amount",
		Long:  "Set an expense amount. Omit the amount to clear it. Pass negative amounts after --.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) > 1 {
				text = args[1]
			}
			return withSession(cmd, opts, func(s *session) error {
				expenseID, err := s.resolveExpense(args[0])
				if err != nil {
					return err
				}
				return lockedHint(s.editor.UpdateExpenseAmount(expenseID, text))
			})
		},
	}
}

func newExpenseRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <expense-id>",
		Aliases: []string{"remove"},
		Short:   "Remove an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				expenseID, err := s.resolveExpense(args[0])
				if err != nil {
					return err
				}
				if err := s.editor.DeleteExpense(expenseID); err != nil {
					return lockedHint(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed expense %s\n", id.Short(expenseID))
				return nil
			})
		},
	}
}

func lockedHint(err error) error {
	if errors.Is(err, budget.ErrLocked) {
		return fmt.Errorf("%w; run `tally unlock` first", err)
	}
	return err
}
