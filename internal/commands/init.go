package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/budget"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/kv"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var backend string
	var currency string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a tally data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.DataDir(opts.dataDir)
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, backend, currency, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally data directory at %s (%s backend)\n", absDir, backend)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend: file or sqlite")
	cmd.Flags().StringVar(&currency, "currency", config.Default().Display.Currency, "currency symbol shown before amounts")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing tally.yaml")

	return cmd
}

func runInit(dir, backend, currency string, force bool) error {
	if err := os.MkdirAll(filepath.Dir(activity.Path(dir)), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = config.DefaultStorageFile(backend)
	cfg.Display.Currency = currency
	if err := cfg.Validate(); err != nil {
		return err
	}
	if backend == config.BackendMemory {
		return fmt.Errorf("memory backend cannot be initialized on disk")
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the storage file with an empty collection unless one exists.
	backendStore, err := openBackend(cfg, dir)
	if err != nil {
		return err
	}
	defer backendStore.Close()

	if _, err := backendStore.Get(budget.BudgetsKey); !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	if err := budget.NewStore(backendStore).Save(nil); err != nil {
		return fmt.Errorf("writing empty collection: %w", err)
	}
	return nil
}
