package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	svc := Default()
	assert.Len(t, svc.All(), len(DefaultNames()))

	for _, n := range svc.All() {
		assert.NotEmpty(t, n)
	}
}

func TestLookup(t *testing.T) {
	svc := Default()

	got, ok := svc.Lookup("rent")
	assert.True(t, ok)
	assert.Equal(t, "RENT", got)

	got, ok = svc.Lookup("  Internet ")
	assert.True(t, ok)
	assert.Equal(t, "INTERNET", got)

	_, ok = svc.Lookup("yacht")
	assert.False(t, ok)
}

func TestNewService_DropsBlankAndDuplicates(t *testing.T) {
	svc := NewService([]string{"Rent", "", "RENT", "  ", "Tuition"})

	assert.Equal(t, []string{"Rent", "Tuition"}, svc.All())

	got, ok := svc.Lookup("rent")
	assert.True(t, ok)
	assert.Equal(t, "Rent", got)
}
