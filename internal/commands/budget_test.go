package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/id"
)

func TestList_Empty(t *testing.T) {
	dir := t.TempDir()
	out := mustTally(t, dir, "list")
	assert.Contains(t, out, "No budget files yet")
}

func TestNoBudgetLoaded(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"show"},
		{"rename", "x"},
		{"salary", "100"},
		{"expense", "add"},
		{"lock"},
		{"balance"},
		{"export"},
	} {
		_, err := runTally(t, dir, args...)
		require.Error(t, err, "tally %v", args)
		assert.Contains(t, err.Error(), "no budget loaded")
	}
}

func TestNew_ShowsEmptyBudget(t *testing.T) {
	dir := t.TempDir()
	out := mustTally(t, dir, "new")
	assert.Contains(t, out, "Created budget")

	out = mustTally(t, dir, "show")
	assert.Contains(t, out, "Untitled Budget")
	assert.Contains(t, out, "Salary: ₱0.00")
	assert.Contains(t, out, "No expenses added yet")
	assert.Contains(t, out, "Total: ₱0.00")
	assert.NotContains(t, out, "Remaining balance")

	budgets, current := storedBudgets(t, dir)
	require.Len(t, budgets, 1)
	assert.Equal(t, budgets[0].ID, current)
	assert.Empty(t, budgets[0].Expenses)
}

func TestMonthlyBudget(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new", "--title", "April")
	mustTally(t, dir, "salary", "30000")
	mustTally(t, dir, "expense", "quick", "rent", "--amount", "12000")
	mustTally(t, dir, "expense", "add", "groceries", "-a", "4500.50")

	out := mustTally(t, dir, "balance")
	assert.Contains(t, out, "Total: ₱16500.50")
	assert.Contains(t, out, "Remaining balance: ₱13499.50")

	out = mustTally(t, dir, "show", "--balance")
	assert.Contains(t, out, "April")
	assert.Contains(t, out, "RENT")
	assert.Contains(t, out, "GROCERIES")
	assert.Contains(t, out, "Remaining balance: ₱13499.50")

	budgets, _ := storedBudgets(t, dir)
	require.Len(t, budgets, 1)
	b := budgets[0]
	assert.Equal(t, "April", b.Title)
	assert.Equal(t, "30000", b.Salary.String())
	require.Len(t, b.Expenses, 2)
	assert.Equal(t, "RENT", b.Expenses[0].Name)
	assert.Equal(t, "12000", b.Expenses[0].Amount.String())
	assert.Equal(t, "GROCERIES", b.Expenses[1].Name)
	assert.Equal(t, "4500.5", b.Expenses[1].Amount.String())
}

func TestSalary_Coercion(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new")

	out := mustTally(t, dir, "salary", "abc")
	assert.Contains(t, out, "Salary: ₱0.00")

	out = mustTally(t, dir, "salary", "12.5kg")
	assert.Contains(t, out, "Salary: ₱12.50")

	out = mustTally(t, dir, "salary", "--", "-1500")
	assert.Contains(t, out, "Salary: ₱-1500.00")
}

func TestRename_Verbatim(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new")
	mustTally(t, dir, "rename", "  may budget ")

	budgets, _ := storedBudgets(t, dir)
	require.Len(t, budgets, 1)
	assert.Equal(t, "  may budget ", budgets[0].Title)
}

func TestOpen_ByPrefix(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new", "--title", "First")
	mustTally(t, dir, "new", "--title", "Second")

	budgets, current := storedBudgets(t, dir)
	require.Len(t, budgets, 2)
	assert.Equal(t, budgets[1].ID, current)

	out := mustTally(t, dir, "open", id.Short(budgets[0].ID))
	assert.Contains(t, out, "Opened First")

	_, current = storedBudgets(t, dir)
	assert.Equal(t, budgets[0].ID, current)

	out = mustTally(t, dir, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*"), "current budget marked: %q", lines[0])
	assert.Contains(t, lines[0], "First")
	assert.Contains(t, lines[0], "0 expenses • ₱0.00")
	assert.True(t, strings.HasPrefix(lines[1], " "))
}

func TestOpen_Unknown(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new")

	_, err := runTally(t, dir, "open", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving budget")
}

func TestLock_RequiresExpenseNames(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new")
	mustTally(t, dir, "expense", "add", "-a", "100")

	out, err := runTally(t, dir, "lock")
	require.Error(t, err)
	assert.Contains(t, out, "Please fill in all expense names before saving")

	budgets, _ := storedBudgets(t, dir)
	require.Len(t, budgets, 1)
	assert.False(t, budgets[0].Locked)
	expenseID := budgets[0].Expenses[0].ID

	mustTally(t, dir, "expense", "name", id.Short(expenseID), "rent")
	out = mustTally(t, dir, "lock")
	assert.Contains(t, out, "Budget locked")

	out = mustTally(t, dir, "show")
	assert.Contains(t, out, "[locked]")

	_, err = runTally(t, dir, "expense", "add", "more")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget is locked")

	_, err = runTally(t, dir, "expense", "amount", id.Short(expenseID), "5")
	require.Error(t, err)

	// Title and salary stay editable.
	mustTally(t, dir, "rename", "Final")
	mustTally(t, dir, "salary", "900")

	mustTally(t, dir, "unlock")
	mustTally(t, dir, "expense", "amount", id.Short(expenseID), "5")

	budgets, _ = storedBudgets(t, dir)
	assert.False(t, budgets[0].Locked)
	assert.Equal(t, "RENT", budgets[0].Expenses[0].Name)
	assert.Equal(t, "5", budgets[0].Expenses[0].Amount.String())
	assert.Equal(t, "Final", budgets[0].Title)
}

func TestDelete_Confirmation(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new", "--title", "Keep me")

	out, err := runTallyWithInput(t, dir, "n\n", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	budgets, _ := storedBudgets(t, dir)
	require.Len(t, budgets, 1)

	out, err = runTallyWithInput(t, dir, "y\n", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Keep me")

	budgets, current := storedBudgets(t, dir)
	assert.Empty(t, budgets)
	assert.Empty(t, current)

	_, err = runTally(t, dir, "show")
	require.Error(t, err)
}

func TestDelete_LeavesOtherBudgets(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new", "--title", "One")
	mustTally(t, dir, "new", "--title", "Two")

	mustTally(t, dir, "delete", "--yes")

	budgets, current := storedBudgets(t, dir)
	require.Len(t, budgets, 1)
	assert.Equal(t, "One", budgets[0].Title)
	assert.Empty(t, current)
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new")
	mustTally(t, dir, "new")

	out, err := runTallyWithInput(t, dir, "", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out = mustTally(t, dir, "reset", "-y")
	assert.Contains(t, out, "All budgets deleted")

	budgets, current := storedBudgets(t, dir)
	assert.Empty(t, budgets)
	assert.Empty(t, current)

	out = mustTally(t, dir, "list")
	assert.Contains(t, out, "No budget files yet")
}

func TestMemoryBackend_DoesNotPersist(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "--backend", "memory", "new")

	out := mustTally(t, dir, "--backend", "memory", "list")
	assert.Contains(t, out, "No budget files yet")

	_, err := os.Stat(filepath.Join(dir, "tally.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestActivity(t *testing.T) {
	dir := t.TempDir()
	out := mustTally(t, dir, "activity")
	assert.Contains(t, out, "No activity recorded")

	mustTally(t, dir, "new")
	mustTally(t, dir, "salary", "500")

	entries, err := activity.Read(dir, activity.Query{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "salary", entries[1].Action)
	assert.Equal(t, "500", entries[1].Details)

	out = mustTally(t, dir, "activity", "-n", "1")
	assert.Contains(t, out, "salary")
	assert.NotContains(t, out, "create")
}

func TestActivity_ScopedToCurrentBudget(t *testing.T) {
	dir := t.TempDir()
	mustTally(t, dir, "new", "--title", "First")
	mustTally(t, dir, "salary", "111.25")
	mustTally(t, dir, "new", "--title", "Second")
	mustTally(t, dir, "salary", "222.75")

	out := mustTally(t, dir, "activity")
	assert.Contains(t, out, "222.75")
	assert.NotContains(t, out, "111.25")

	out = mustTally(t, dir, "activity", "--all")
	assert.Contains(t, out, "111.25")
	assert.Contains(t, out, "222.75")
}

func TestActivity_Disabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally.yaml"), []byte("activity:\n  enabled: false\n"), 0o644))

	mustTally(t, dir, "new")

	_, err := os.Stat(activity.Path(dir))
	assert.True(t, os.IsNotExist(err))
}
