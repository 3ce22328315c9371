package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/budget"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/kv"
	"github.com/tally-dev/tally/internal/kv/filekv"
	"github.com/tally-dev/tally/internal/kv/sqlitekv"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/presets"
)

var errNoBudget = errors.New("no budget loaded; run `tally new` or `tally open <id>`")

// session wires one command invocation: config, storage, and the editor
// restored to the persisted current budget.
type session struct {
	dataDir  string
	cfg      *config.Config
	log      *slog.Logger
	backend  kv.Store
	store    *budget.Store
	editor   *budget.Editor
	presets  *presets.Service
	activity *activity.Log
}

func openSession(opts *rootOptions, errOut io.Writer) (*session, error) {
	dataDir := config.DataDir(opts.dataDir)
	cfg, err := config.LoadDir(dataDir)
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
		cfg.Storage.Path = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := opts.logLevel
	if level == "" {
		level = logging.LevelFromEnv(cfg.Log.Level)
	}
	log := logging.New(errOut, level)

	backend, err := openBackend(cfg, dataDir)
	if err != nil {
		return nil, err
	}
	log.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.StoragePath(dataDir))

	s := &session{
		dataDir: dataDir,
		cfg:     cfg,
		log:     log,
		backend: backend,
		store:   budget.NewStore(backend, budget.WithIDGenerator(id.Random{}), budget.WithLogger(log)),
		presets: presets.Default(),
	}
	if len(cfg.QuickAdd) > 0 {
		s.presets = presets.NewService(cfg.QuickAdd)
	}

	var editorOpts []budget.EditorOption
	if cfg.Activity.Enabled {
		s.activity = activity.NewLog()
		editorOpts = append(editorOpts, budget.WithRecorder(s.activity))
	}
	s.editor = budget.NewEditor(s.store, editorOpts...)

	if err := s.editor.Restore(); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("restoring current budget: %w", err)
	}
	return s, nil
}

func openBackend(cfg *config.Config, dataDir string) (kv.Store, error) {
	path := cfg.StoragePath(dataDir)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlitekv.Open(path)
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return filekv.Open(path)
	}
}

// Close flushes the activity log and releases the storage backend.
func (s *session) Close() error {
	var errs []error
	if s.activity != nil {
		if err := s.activity.Flush(s.dataDir); err != nil {
			errs = append(errs, fmt.Errorf("writing activity log: %w", err))
		}
	}
	if err := s.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}

// active returns the loaded budget or errNoBudget.
func (s *session) active() (model.Budget, error) {
	b, ok := s.editor.Active()
	if !ok {
		return model.Budget{}, errNoBudget
	}
	return b, nil
}

// resolveExpense maps a full or prefix expense ID in the active budget.
func (s *session) resolveExpense(ref string) (string, error) {
	b, err := s.active()
	if err != nil {
		return "", err
	}
	ids := make([]string, len(b.Expenses))
	for i, e := range b.Expenses {
		ids[i] = e.ID
	}
	expenseID, err := id.Resolve(ref, ids)
	if err != nil {
		return "", fmt.Errorf("resolving expense: %w", err)
	}
	return expenseID, nil
}

// withSession opens a session, runs fn, and closes the session.
func withSession(cmd *cobra.Command, opts *rootOptions, fn func(s *session) error) (err error) {
	s, err := openSession(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
