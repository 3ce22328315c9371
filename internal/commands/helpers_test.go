package commands_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/budget"
	"github.com/tally-dev/tally/internal/commands"
	"github.com/tally-dev/tally/internal/kv/filekv"
	"github.com/tally-dev/tally/internal/model"
)

// runTally executes the CLI in process against dataDir and returns combined
// stdout and stderr.
func runTally(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	return runTallyWithInput(t, dataDir, "", args...)
}

func runTallyWithInput(t *testing.T, dataDir, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "")

	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// mustTally runs the CLI and fails the test on error.
func mustTally(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runTally(t, dataDir, args...)
	require.NoError(t, err, "tally %v: %s", args, out)
	return out
}

// storedBudgets reads the file backend in dataDir directly.
func storedBudgets(t *testing.T, dataDir string) ([]model.Budget, string) {
	t.Helper()
	backend, err := filekv.Open(filepath.Join(dataDir, "tally.json"))
	require.NoError(t, err)
	defer backend.Close()

	store := budget.NewStore(backend)
	budgets, err := store.ListAll()
	require.NoError(t, err)
	current, _, err := store.CurrentID()
	require.NoError(t, err)
	return budgets, current
}
