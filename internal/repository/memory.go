package repository

import (
	"context"
	"sync"

	"github.com/soldera/orderpay/internal/domain/order"
)

var _ order.Store = (*MemoryOrderRepository)(nil)

// MemoryOrderRepository implements order.Store on a map. It stores deep
// snapshots so a caller mutating an aggregate after Save (or before the next
// Save after Get) cannot change what the store holds.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewMemoryOrderRepository returns an empty in-memory store.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// Get loads a snapshot of the order by id. It returns order.ErrNotFound when
// absent.
func (r *MemoryOrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return snapshot(o), nil
}

// Save stores a snapshot of the order, overwriting any previous aggregate
// with the same id.
func (r *MemoryOrderRepository) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID()] = snapshot(o)
	return nil
}

func snapshot(o *order.Order) *order.Order {
	return order.Rehydrate(
		o.ID(), o.CustomerID(), o.Lines(), o.Status(), o.CreatedAt(), o.UpdatedAt(),
	)
}
