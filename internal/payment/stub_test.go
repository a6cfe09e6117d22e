package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soldera/orderpay/internal/clock"
	"github.com/soldera/orderpay/internal/domain/money"
)

func TestStub_Approve(t *testing.T) {
	s := NewStub(true)
	amount, err := money.FromString("38.45", "USD")
	require.NoError(t, err)

	out, err := s.Charge(context.Background(), "order-1", amount)
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.NotEmpty(t, out.TransactionID)
	assert.Equal(t, "Payment processed successfully", out.Message)
}

func TestStub_Decline(t *testing.T) {
	s := NewStub(false)
	amount, err := money.FromString("10.00", "USD")
	require.NoError(t, err)

	out, err := s.Charge(context.Background(), "order-1", amount)
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.NotEmpty(t, out.TransactionID)
	assert.Equal(t, "Payment declined by gateway", out.Message)
}

func TestStub_RecordsCharges(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStub(true, WithStubClock(clock.Fixed(now)))
	amount, err := money.FromString("10.00", "USD")
	require.NoError(t, err)

	_, err = s.Charge(context.Background(), "order-1", amount)
	require.NoError(t, err)
	_, err = s.Charge(context.Background(), "order-2", amount)
	require.NoError(t, err)

	charges := s.Charges()
	require.Len(t, charges, 2)
	assert.Equal(t, "order-1", charges[0].OrderID)
	assert.Equal(t, "order-2", charges[1].OrderID)
	assert.True(t, amount.Equal(charges[0].Amount))
	assert.Equal(t, now, charges[0].At)
}
