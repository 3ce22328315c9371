package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/buildinfo"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dataDir  string
	backend  string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Local budget tracker",
		Long:    "Track salaries and expenses in named budget files stored on this machine.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", "", "data directory (default $TALLY_DATA_DIR or ~/.local/share/tally)")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend override: file, sqlite, memory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newNewCommand(opts),
		newListCommand(opts),
		newOpenCommand(opts),
		newShowCommand(opts),
		newRenameCommand(opts),
		newSalaryCommand(opts),
		newExpenseCommand(opts),
		newLockCommand(opts),
		newUnlockCommand(opts),
		newBalanceCommand(opts),
		newDeleteCommand(opts),
		newResetCommand(opts),
		newExportCommand(opts),
		newPresetsCommand(opts),
		newActivityCommand(opts),
	)

	return rootCmd
}
