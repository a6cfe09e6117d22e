// Package order holds the Order aggregate, its value objects, and the
// payment orchestration that coordinates the aggregate with an order store
// and an external payment channel.
package order

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/soldera/orderpay/internal/clock"
	"github.com/soldera/orderpay/internal/domain/money"
)

// Status is the lifecycle state of an order.
type Status string

// Order lifecycle statuses. Pending and Cancelled are reserved values:
// no operation currently transitions into them, but stores accept them.
const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Order is the aggregate root. All consistency-relevant mutations go through
// its methods; the line collection is owned exclusively by the aggregate and
// only ever exposed as a snapshot copy.
type Order struct {
	id         string
	customerID string
	lines      []Line
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
	clock      clock.Clock
}

// Option customises order construction.
type Option func(*Order)

// WithClock injects the clock used for createdAt/updatedAt stamps.
func WithClock(c clock.Clock) Option {
	return func(o *Order) { o.clock = c }
}

// New creates a draft order for a customer with a fresh identity.
func New(customerID string, opts ...Option) *Order {
	o := &Order{
		id:         uuid.New().String(),
		customerID: customerID,
		status:     StatusDraft,
		clock:      clock.System(),
	}
	for _, opt := range opts {
		opt(o)
	}
	now := o.clock.Now()
	o.createdAt = now
	o.updatedAt = now
	return o
}

// Rehydrate reconstructs an order from persisted state. It is intended for
// stores; it performs no invariant checks beyond copying the lines so the
// aggregate keeps exclusive ownership of its collection.
func Rehydrate(id, customerID string, lines []Line, status Status, createdAt, updatedAt time.Time, opts ...Option) *Order {
	o := &Order{
		id:         id,
		customerID: customerID,
		lines:      append([]Line(nil), lines...),
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		clock:      clock.System(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ID returns the stable aggregate identity.
func (o *Order) ID() string { return o.id }

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() string { return o.customerID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the timestamp of the last successful mutation.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Lines returns a snapshot copy of the line collection. Mutating the returned
// slice has no effect on the aggregate.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// TotalAmount recomputes the order total from the current lines. It is never
// cached, so it cannot drift from the line collection. An order with no lines
// totals zero in the default currency.
func (o *Order) TotalAmount() (money.Money, error) {
	if len(o.lines) == 0 {
		return money.Zero(money.DefaultCurrency), nil
	}
	total := o.lines[0].Total()
	for _, line := range o.lines[1:] {
		sum, err := total.Add(line.Total())
		if err != nil {
			return money.Money{}, errors.Wrap(err, "sum line totals")
		}
		total = sum
	}
	return total, nil
}

// AddLine appends a line to the order. It fails with
// ErrPaidOrderModification once the order is paid. The aggregate total is
// revalidated after the mutation; a failure there (mixed currencies) rolls
// the append back.
func (o *Order) AddLine(line Line) error {
	if o.status == StatusPaid {
		return ErrPaidOrderModification
	}

	o.lines = append(o.lines, line)
	if _, err := o.TotalAmount(); err != nil {
		o.lines = o.lines[:len(o.lines)-1]
		return err
	}
	o.touch()
	return nil
}

// RemoveLine removes all lines matching productID. Removing a product that is
// not on the order is a no-op. It fails with ErrPaidOrderModification once
// the order is paid.
func (o *Order) RemoveLine(productID string) error {
	if o.status == StatusPaid {
		return ErrPaidOrderModification
	}

	kept := o.lines[:0]
	for _, line := range o.lines {
		if line.productID != productID {
			kept = append(kept, line)
		}
	}
	o.lines = kept
	o.touch()
	return nil
}

// Pay records the domain fact that the order is paid. It fails with
// ErrEmptyOrder when the order has no lines and with ErrAlreadyPaid when the
// order was paid before. It never talks to a payment channel; deciding when
// to call Pay relative to charging is the orchestrator's job.
func (o *Order) Pay() error {
	if err := o.ensurePayable(); err != nil {
		return err
	}
	o.status = StatusPaid
	o.touch()
	return nil
}

// ensurePayable checks Pay's preconditions without mutating anything.
func (o *Order) ensurePayable() error {
	if len(o.lines) == 0 {
		return ErrEmptyOrder
	}
	if o.status == StatusPaid {
		return ErrAlreadyPaid
	}
	return nil
}

// Equal implements aggregate identity: two orders are the same order iff
// their ids match, regardless of line contents.
func (o *Order) Equal(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id == other.id
}

func (o *Order) touch() {
	o.updatedAt = o.clock.Now()
}
