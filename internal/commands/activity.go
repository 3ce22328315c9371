package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/id"
)

func newActivityCommand(opts *rootOptions) *cobra.Command {
	var limit int
	var all bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent budget changes",
		Long:  "Show recent changes to the current budget, or to every budget with --all.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session) error {
				q := activity.Query{Limit: limit}
				if b, ok := s.editor.Active(); ok && !all {
					q.BudgetID = b.ID
				}
				entries, err := activity.Read(s.dataDir, q)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						e.Timestamp.Local().Format(time.DateTime), e.Action, id.Short(e.BudgetID), e.Details)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many entries (0 for all)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include changes to every budget")

	return cmd
}
