package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soldera/orderpay/internal/domain/money"
)

// --- Mock implementations ---

type mockStore struct {
	orders   map[string]*Order
	getErr   error
	saveErr  error
	getPanic bool
	saved    []*Order
}

func newMockStore(orders ...*Order) *mockStore {
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		byID[o.ID()] = o
	}
	return &mockStore{orders: byID}
}

func (m *mockStore) Get(_ context.Context, id string) (*Order, error) {
	if m.getPanic {
		panic("store exploded")
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (m *mockStore) Save(_ context.Context, o *Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, o)
	m.orders[o.ID()] = o
	return nil
}

type chargeCall struct {
	orderID string
	amount  money.Money
}

type mockChannel struct {
	outcome Outcome
	err     error
	calls   []chargeCall
}

func (m *mockChannel) Charge(_ context.Context, orderID string, amount money.Money) (Outcome, error) {
	m.calls = append(m.calls, chargeCall{orderID: orderID, amount: amount})
	if m.err != nil {
		return Outcome{}, m.err
	}
	return m.outcome, nil
}

func approvingChannel() *mockChannel {
	return &mockChannel{outcome: Outcome{
		Success:       true,
		TransactionID: "txn-1",
		Message:       "Payment processed successfully",
	}}
}

// --- Tests ---

func TestExecute_OrderNotFound(t *testing.T) {
	channel := approvingChannel()
	svc := NewPayService(newMockStore(), channel)

	out := svc.Execute(context.Background(), "missing-id")

	assert.False(t, out.Success)
	assert.Empty(t, out.TransactionID)
	assert.Contains(t, out.Message, "not found")
	assert.Empty(t, channel.calls, "channel must not be called for a missing order")
}

func TestExecute_EmptyOrder(t *testing.T) {
	o := New("customer-1")
	store := newMockStore(o)
	channel := approvingChannel()
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), o.ID())

	assert.False(t, out.Success)
	assert.Equal(t, ErrEmptyOrder.Error(), out.Message)
	assert.Empty(t, channel.calls)
	assert.Empty(t, store.saved)
	assert.Equal(t, StatusDraft, o.Status())
}

func TestExecute_AlreadyPaid(t *testing.T) {
	o := newOrderWithLines(t, mustLine(t, "p1", "Widget", "10.00", 1))
	require.NoError(t, o.Pay())
	channel := approvingChannel()
	svc := NewPayService(newMockStore(o), channel)

	out := svc.Execute(context.Background(), o.ID())

	assert.False(t, out.Success)
	assert.Equal(t, ErrAlreadyPaid.Error(), out.Message)
	assert.Empty(t, channel.calls)
}

func TestExecute_Success(t *testing.T) {
	o := newOrderWithLines(t,
		mustLine(t, "p1", "Widget", "10.99", 2),
		mustLine(t, "p2", "Gadget", "5.49", 3),
	)
	store := newMockStore(o)
	channel := approvingChannel()
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), o.ID())

	require.True(t, out.Success)
	assert.Equal(t, "txn-1", out.TransactionID)
	assert.Equal(t, "Payment processed successfully", out.Message)

	// Exactly one charge, with the exact order total.
	require.Len(t, channel.calls, 1)
	assert.Equal(t, o.ID(), channel.calls[0].orderID)
	assert.True(t, decimal.RequireFromString("38.45").Equal(channel.calls[0].amount.Amount()))

	// Paid and persisted, exactly once.
	require.Len(t, store.saved, 1)
	assert.Equal(t, StatusPaid, store.saved[0].Status())
}

func TestExecute_Declined(t *testing.T) {
	o := newOrderWithLines(t, mustLine(t, "p1", "Widget", "10.00", 1))
	store := newMockStore(o)
	channel := &mockChannel{outcome: Outcome{
		Success:       false,
		TransactionID: "txn-2",
		Message:       "Payment declined by gateway",
	}}
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), o.ID())

	assert.False(t, out.Success)
	assert.Equal(t, "txn-2", out.TransactionID)
	assert.Equal(t, "Payment declined by gateway", out.Message)

	// No mutation, no save on decline.
	assert.Equal(t, StatusDraft, o.Status())
	assert.Empty(t, store.saved)
}

func TestExecute_SecondAttemptAfterSuccess(t *testing.T) {
	o := newOrderWithLines(t, mustLine(t, "p1", "Widget", "10.00", 1))
	store := newMockStore(o)
	channel := approvingChannel()
	svc := NewPayService(store, channel)

	first := svc.Execute(context.Background(), o.ID())
	require.True(t, first.Success)

	second := svc.Execute(context.Background(), o.ID())
	assert.False(t, second.Success)
	assert.Equal(t, ErrAlreadyPaid.Error(), second.Message)
	assert.Len(t, channel.calls, 1, "a paid order must never be charged again")
}

func TestExecute_StoreGetError(t *testing.T) {
	store := newMockStore()
	store.getErr = errors.New("db unreachable")
	channel := approvingChannel()
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), "some-id")

	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "db unreachable")
	assert.Empty(t, channel.calls)
}

func TestExecute_ChannelError(t *testing.T) {
	o := newOrderWithLines(t, mustLine(t, "p1", "Widget", "10.00", 1))
	store := newMockStore(o)
	channel := &mockChannel{err: errors.New("provider timeout")}
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), o.ID())

	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "provider timeout")
	assert.Equal(t, StatusDraft, o.Status())
	assert.Empty(t, store.saved)
}

func TestExecute_SaveErrorAfterCharge(t *testing.T) {
	o := newOrderWithLines(t, mustLine(t, "p1", "Widget", "10.00", 1))
	store := newMockStore(o)
	store.saveErr = errors.New("db write failed")
	channel := approvingChannel()
	svc := NewPayService(store, channel)

	out := svc.Execute(context.Background(), o.ID())

	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "db write failed")
	require.Len(t, channel.calls, 1)
}

func TestExecute_CollaboratorPanicContained(t *testing.T) {
	store := newMockStore()
	store.getPanic = true
	svc := NewPayService(store, approvingChannel())

	var out Outcome
	require.NotPanics(t, func() {
		out = svc.Execute(context.Background(), "some-id")
	})

	assert.False(t, out.Success)
	assert.Empty(t, out.TransactionID)
	assert.Contains(t, out.Message, "store exploded")
}
