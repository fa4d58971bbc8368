package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyName(t *testing.T) {
	name, ok := CurrencyName("USD")
	require.True(t, ok)
	assert.Equal(t, "United States Dollar", name)

	_, ok = CurrencyName("XTS")
	assert.False(t, ok)

	_, ok = CurrencyName("usd")
	assert.False(t, ok, "lookups are by uppercase code only")
}

func TestSupportedCurrencies(t *testing.T) {
	list := SupportedCurrencies()
	require.NotEmpty(t, list)

	seen := make(map[string]struct{}, len(list))
	for _, c := range list {
		assert.Len(t, c.Code, 3)
		assert.NotEmpty(t, c.Name)

		_, dup := seen[c.Code]
		assert.False(t, dup, "duplicate code %s", c.Code)
		seen[c.Code] = struct{}{}
	}

	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Code, list[i].Code, "table must be ordered by code")
	}
}

func TestSupportedCurrencies_ReturnsCopy(t *testing.T) {
	list := SupportedCurrencies()
	require.NotEmpty(t, list)

	list[0].Name = "mutated"

	fresh := SupportedCurrencies()
	assert.NotEqual(t, "mutated", fresh[0].Name)
}
