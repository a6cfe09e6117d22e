// Package payment provides PaymentChannel implementations: an in-process
// stub for tests and local runs, and an HTTP client for a remote provider.
package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soldera/orderpay/internal/clock"
	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
)

// ChargeRecord captures one charge seen by the stub channel.
type ChargeRecord struct {
	OrderID string
	Amount  money.Money
	At      time.Time
}

var _ order.PaymentChannel = (*Stub)(nil)

// Stub is a payment channel that approves or declines every charge according
// to its configuration and records each attempt. It issues a transaction id
// on both outcomes, like a real gateway that tracks declined attempts.
type Stub struct {
	approve bool
	clock   clock.Clock

	mu      sync.Mutex
	charges []ChargeRecord
}

// StubOption customises the stub channel.
type StubOption func(*Stub)

// WithStubClock injects the clock used for charge timestamps.
func WithStubClock(c clock.Clock) StubOption {
	return func(s *Stub) { s.clock = c }
}

// NewStub creates a stub channel. When approve is true every charge succeeds;
// otherwise every charge is declined.
func NewStub(approve bool, opts ...StubOption) *Stub {
	s := &Stub{
		approve: approve,
		clock:   clock.System(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge records the attempt and returns the configured outcome. It never
// returns an error: the stub has no infrastructure to fail.
func (s *Stub) Charge(_ context.Context, orderID string, amount money.Money) (order.Outcome, error) {
	s.mu.Lock()
	s.charges = append(s.charges, ChargeRecord{
		OrderID: orderID,
		Amount:  amount,
		At:      s.clock.Now(),
	})
	s.mu.Unlock()

	txn := uuid.New().String()
	if s.approve {
		return order.Outcome{
			Success:       true,
			TransactionID: txn,
			Message:       "Payment processed successfully",
		}, nil
	}
	return order.Outcome{
		Success:       false,
		TransactionID: txn,
		Message:       "Payment declined by gateway",
	}, nil
}

// Charges returns a snapshot of all recorded charge attempts.
func (s *Stub) Charges() []ChargeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChargeRecord(nil), s.charges...)
}
