package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NegativeAmount(t *testing.T) {
	_, err := New(decimal.NewFromInt(-1), "USD")
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestNew_DefaultCurrency(t *testing.T) {
	m, err := New(decimal.NewFromInt(10), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency())
}

func TestFromString(t *testing.T) {
	m, err := FromString("10.99", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", m.Currency())
	assert.True(t, decimal.RequireFromString("10.99").Equal(m.Amount()))

	_, err = FromString("not-a-number", "EUR")
	require.Error(t, err)
}

func TestAdd(t *testing.T) {
	a, err := FromString("10.50", "USD")
	require.NoError(t, err)
	b, err := FromString("5.25", "USD")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("15.75").Equal(sum.Amount()))

	// Operands are untouched.
	assert.True(t, decimal.RequireFromString("10.50").Equal(a.Amount()))
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	usd, err := FromString("10.00", "USD")
	require.NoError(t, err)
	eur, err := FromString("10.00", "EUR")
	require.NoError(t, err)

	_, err = usd.Add(eur)
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMul(t *testing.T) {
	m, err := FromString("10.99", "USD")
	require.NoError(t, err)

	doubled, err := m.Mul(2)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("21.98").Equal(doubled.Amount()))

	zero, err := m.Mul(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = m.Mul(-1)
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestZero(t *testing.T) {
	z := Zero("")
	assert.Equal(t, "USD", z.Currency())
	assert.True(t, z.IsZero())
}

func TestEqual(t *testing.T) {
	a, err := FromString("10.00", "USD")
	require.NoError(t, err)
	b, err := New(decimal.NewFromInt(10), "USD")
	require.NoError(t, err)
	c, err := New(decimal.NewFromInt(10), "EUR")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestString(t *testing.T) {
	m, err := FromString("38.45", "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD 38.45", m.String())

	n, err := New(decimal.NewFromInt(5), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR 5.00", n.String())
}
