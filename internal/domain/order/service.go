package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/soldera/orderpay/internal/domain/money"
)

// Outcome is the value-shaped result of a payment attempt. A decline is a
// valid outcome, not an error: Success=false with the channel's message.
type Outcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// Store defines the persistence contract for orders.
type Store interface {
	// Get loads an order by id. It returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Order, error)
	// Save persists an order, overwriting any previous aggregate with the
	// same id.
	Save(ctx context.Context, o *Order) error
}

// PaymentChannel defines the external charging contract. Ordinary declines
// come back as an Outcome with Success=false; an error return is reserved
// for unrecoverable infrastructure faults.
type PaymentChannel interface {
	Charge(ctx context.Context, orderID string, amount money.Money) (Outcome, error)
}

// PayService executes "pay this order" as a single logical operation across
// the aggregate, the store, and an external payment channel. No distributed
// transaction is available, so it orders its steps to never persist a paid
// order for which no money moved: eligibility is checked before charging, and
// status is mutated only after the charge is confirmed.
type PayService struct {
	orders  Store
	channel PaymentChannel
}

// NewPayService creates a PayService with the required collaborators.
func NewPayService(orders Store, channel PaymentChannel) *PayService {
	return &PayService{
		orders:  orders,
		channel: channel,
	}
}

// Execute runs the payment flow for one order. It never returns a raised
// fault to the caller: domain rejections, declines, and infrastructure
// failures all come back as a failed Outcome. At most one charge and at most
// one save happen per call, the save only on the success path.
func (s *PayService) Execute(ctx context.Context, orderID string) (out Outcome) {
	// Collaborator contracts are error-based, but a panicking store or
	// channel must not cross this boundary either.
	defer func() {
		if r := recover(); r != nil {
			zctx.From(ctx).Error("payment aborted by panic",
				zap.String("order_id", orderID),
				zap.Any("panic", r),
			)
			out = Outcome{Message: fmt.Sprintf("payment failed: %v", r)}
		}
	}()

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Outcome{Message: fmt.Sprintf("Order %s not found", orderID)}
		}
		return s.fault(ctx, orderID, errors.Wrap(err, "load order"))
	}

	// Same rules Pay enforces, checked before touching the channel so an
	// order that could never be legally paid costs no external call.
	if err := o.ensurePayable(); err != nil {
		return Outcome{Message: err.Error()}
	}

	amount, err := o.TotalAmount()
	if err != nil {
		return s.fault(ctx, orderID, errors.Wrap(err, "compute total"))
	}

	result, err := s.channel.Charge(ctx, orderID, amount)
	if err != nil {
		return s.fault(ctx, orderID, errors.Wrap(err, "charge"))
	}
	if !result.Success {
		// Declined: the order keeps its pre-call status and nothing is
		// persisted. The channel's outcome goes back unchanged.
		return result
	}

	// The precheck above guarantees Pay succeeds here.
	if err := o.Pay(); err != nil {
		return s.fault(ctx, orderID, errors.Wrap(err, "mark paid"))
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return s.fault(ctx, orderID, errors.Wrap(err, "save order"))
	}

	return result
}

// fault converts a collaborator failure into a negative outcome and logs it.
func (s *PayService) fault(ctx context.Context, orderID string, err error) Outcome {
	zctx.From(ctx).Error("payment failed",
		zap.String("order_id", orderID),
		zap.Error(err),
	)
	return Outcome{Message: err.Error()}
}
