package order

import "github.com/go-faster/errors"

// Sentinel errors raised by the aggregate on precondition violations.
// These always indicate caller misuse, never an external failure.
var (
	// ErrNotFound is returned by stores when no order exists for an id.
	ErrNotFound = errors.New("order not found")

	// ErrEmptyOrder rejects paying an order with no lines.
	ErrEmptyOrder = errors.New("cannot pay empty order")

	// ErrAlreadyPaid rejects paying an order a second time.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrPaidOrderModification rejects line mutations on a paid order.
	ErrPaidOrderModification = errors.New("cannot modify order after payment")

	// ErrInvalidQuantity rejects non-positive line quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)
