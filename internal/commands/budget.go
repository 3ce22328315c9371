package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/budget"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/report"
)

func newNewCommand(opts *rootOptions) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a budget and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				b, err := s.editor.CreateBudget()
				if err != nil {
					return fmt.Errorf("creating budget: %w", err)
				}
				if title != "" {
					if err := s.editor.Rename(title); err != nil {
						return fmt.Errorf("naming budget: %w", err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created budget %s\n", id.Short(b.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "initial title")

	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List budget files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				budgets, err := s.store.ListAll()
				if err != nil {
					return err
				}
				currentID := ""
				if b, ok := s.editor.Active(); ok {
					currentID = b.ID
				}
				return report.RenderList(cmd.OutOrStdout(), budgets, currentID, s.cfg.Display.Currency)
			})
		},
	}
}

func newOpenCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open <budget-id>",
		Short: "Make a budget current",
		Long:  "Make a budget current. The ID may be any unique prefix shown by `tally list`.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				budgets, err := s.store.ListAll()
				if err != nil {
					return err
				}
				ids := make([]string, len(budgets))
				for i, b := range budgets {
					ids[i] = b.ID
				}
				budgetID, err := id.Resolve(args[0], ids)
				if err != nil {
					return fmt.Errorf("resolving budget: %w", err)
				}
				if _, err := s.editor.Load(budgetID); err != nil {
					return fmt.Errorf("loading budget: %w", err)
				}
				b, err := s.active()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", report.DisplayTitle(b))
				return nil
			})
		},
	}
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var showBalance bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				b, err := s.active()
				if err != nil {
					return err
				}
				return report.RenderBudget(cmd.OutOrStdout(), b, report.Options{
					Currency:    s.cfg.Display.Currency,
					ShowBalance: showBalance,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&showBalance, "balance", "b", false, "include the remaining balance")

	return cmd
}

func newRenameCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <title>",
		Short: "Set the current budget's title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if _, err := s.active(); err != nil {
					return err
				}
				return s.editor.Rename(args[0])
			})
		},
	}
}

func newSalaryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "salary <amount>",
		Short: "Set the current budget's salary",
		Long:  "Set the salary. Text that is not a number is stored as 0. Pass negative amounts after --.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if _, err := s.active(); err != nil {
					return err
				}
				if err := s.editor.SetSalary(args[0]); err != nil {
					return err
				}
				b, err := s.active()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Salary: %s\n", report.FormatMoney(s.cfg.Display.Currency, b.Salary.Decimal()))
				return nil
			})
		},
	}
}

func newLockCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Finalize the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if _, err := s.active(); err != nil {
					return err
				}
				err := s.editor.Lock()
				var lockErr *budget.LockError
				if errors.As(err, &lockErr) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Please fill in all expense names before saving")
					for _, p := range lockErr.Problems {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %d. [%s] %s\n", p.Index, id.Short(p.ExpenseID), p.Description)
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Budget locked")
				return nil
			})
		},
	}
}

func newUnlockCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Make the current budget editable again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if _, err := s.active(); err != nil {
					return err
				}
				if err := s.editor.Unlock(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Budget unlocked")
				return nil
			})
		},
	}
}

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the current budget's remaining balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				if _, err := s.active(); err != nil {
					return err
				}
				currency := s.cfg.Display.Currency
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total: %s\n", report.FormatMoney(currency, s.editor.Total()))
				fmt.Fprintf(out, "Remaining balance: %s\n", report.FormatMoney(currency, s.editor.Balance()))
				return nil
			})
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				b, err := s.active()
				if err != nil {
					return err
				}
				ok, err := confirm(cmd, yes, fmt.Sprintf("Delete %q? This cannot be undone.", report.DisplayTitle(b)))
				if err != nil || !ok {
					return err
				}
				if err := s.editor.DeleteActive(); err != nil {
					return fmt.Errorf("deleting budget: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", report.DisplayTitle(b))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				ok, err := confirm(cmd, yes, "Delete ALL budget files? This cannot be undone.")
				if err != nil || !ok {
					return err
				}
				if err := s.editor.ResetAll(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All budgets deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
