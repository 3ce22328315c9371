package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"50000", "50000"},
		{"1200.5", "1200.5"},
		{"  42", "42"},
		{"12abc", "12"},
		{".75", "0.75"},
		{"3.", "3"},
		{"-250", "-250"},
		{"+8", "8"},
		{"1e3", "1000"},
		{"abc", "0"},
		{"", "0"},
		{".", "0"},
		{"-", "0"},
		{"1e308", "1e308"},
		{"2.5e-3", "0.0025"},
		{"1e400", "0"},
		{"-1e400", "0"},
		{"1e-400", "0"},
		{"1e999999999", "0"},
		{"1e-999999999", "0"},
		{"1e99999999999", "0"},
	}
	for _, tt := range tests {
		got := ParseNumber(tt.input)
		assert.True(t, dec(tt.want).Equal(got), "ParseNumber(%q) = %s, want %s", tt.input, got, tt.want)
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("").IsBlank(), "empty string stays blank")

	zero := ParseAmount("not a number")
	assert.False(t, zero.IsBlank(), "invalid text coerces to 0, not blank")
	assert.True(t, zero.Decimal().IsZero())

	assert.True(t, ParseAmount("99.99").Decimal().Equal(dec("99.99")))
}

func TestAmountJSON(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{Blank(), `""`},
		{AmountOf(dec("1200.5")), `1200.5`},
		{AmountOf(decimal.Zero), `0`},
		{AmountOf(dec("-3")), `-3`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))

		var got Amount
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, tt.amount.Equal(got), "%s should survive round-trip", tt.want)
	}
}

func TestAmountUnmarshalLenient(t *testing.T) {
	tests := []struct {
		input string
		blank bool
		want  string
	}{
		{`null`, true, "0"},
		{`""`, true, "0"},
		{`"15.25"`, false, "15.25"},
		{`"oops"`, false, "0"},
		{`7`, false, "7"},
	}
	for _, tt := range tests {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(tt.input), &a), "input %s", tt.input)
		assert.Equal(t, tt.blank, a.IsBlank(), "input %s", tt.input)
		assert.True(t, dec(tt.want).Equal(a.Decimal()), "input %s", tt.input)
	}
}

func TestAmountUnmarshalOutOfRange(t *testing.T) {
	var a Amount
	require.Error(t, json.Unmarshal([]byte(`1e400`), &a))

	require.NoError(t, json.Unmarshal([]byte(`1e-400`), &a))
	assert.True(t, a.Decimal().IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"1e20000000"`), &a))
	assert.True(t, a.Decimal().IsZero())
}

func TestParseNumberKeepsSmallOutput(t *testing.T) {
	for _, input := range []string{"1e308", "-1e308", "1e-300", "4.9e-324"} {
		data, err := json.Marshal(AmountOf(ParseNumber(input)))
		require.NoError(t, err)
		assert.Less(t, len(data), 400, "ParseNumber(%q) marshals to %d bytes", input, len(data))
	}
}

func TestBudgetJSONFieldNames(t *testing.T) {
	b := NewBudget("b-1")
	b.Title = "March"
	b.Expenses = append(b.Expenses, Expense{ID: "e-1", Name: "RENT", Amount: Blank()})

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"b-1","title":"March","salary":0,"expenses":[{"id":"e-1","name":"RENT","amount":""}],"locked":false}`,
		string(data))
}

func TestTotalAndBalance(t *testing.T) {
	b := NewBudget("b-1")
	b.Salary = ParseAmount("50000")
	b.Expenses = []Expense{
		{ID: "e-1", Name: "RENT", Amount: ParseAmount("1200.5")},
		{ID: "e-2", Name: "FOOD", Amount: Blank()},
	}

	assert.True(t, b.Total().Equal(dec("1200.5")))
	assert.True(t, b.Balance().Equal(dec("48799.5")))
}

func TestTotalOrderIndependent(t *testing.T) {
	amounts := []string{"0.1", "0.2", "", "19.99", "-5", "1000"}
	var expenses []Expense
	for i, a := range amounts {
		expenses = append(expenses, Expense{ID: string(rune('a' + i)), Amount: ParseAmount(a)})
	}
	forward := Budget{Expenses: expenses}

	reversed := make([]Expense, len(expenses))
	for i, e := range expenses {
		reversed[len(expenses)-1-i] = e
	}
	backward := Budget{Expenses: reversed}

	assert.True(t, forward.Total().Equal(backward.Total()))
	assert.True(t, forward.Total().Equal(dec("1015.29")))
}

func TestClone(t *testing.T) {
	b := NewBudget("b-1")
	b.Expenses = append(b.Expenses, Expense{ID: "e-1", Name: "RENT"})

	c := b.Clone()
	c.Expenses[0].Name = "CHANGED"
	assert.Equal(t, "RENT", b.Expenses[0].Name)

	empty := Budget{ID: "b-2"}.Clone()
	assert.NotNil(t, empty.Expenses)
}

func TestExpenseIndex(t *testing.T) {
	b := Budget{Expenses: []Expense{{ID: "x"}, {ID: "y"}}}
	assert.Equal(t, 1, b.ExpenseIndex("y"))
	assert.Equal(t, -1, b.ExpenseIndex("z"))
}
