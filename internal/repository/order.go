package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
)

const (
	getOrderSQL = `SELECT id, customer_id, lines, status, created_at, updated_at
		FROM orders WHERE id = $1`

	saveOrderSQL = `INSERT INTO orders (id, customer_id, lines, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			lines       = EXCLUDED.lines,
			status      = EXCLUDED.status,
			updated_at  = EXCLUDED.updated_at`
)

var _ order.Store = (*OrderRepository)(nil)

// OrderRepository implements order.Store backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// lineRecord is the JSONB shape of one order line.
type lineRecord struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
	Quantity    int             `json:"quantity"`
}

// Get loads an order by id. It returns order.ErrNotFound when absent.
func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var (
		orderID, customerID  string
		linesJSON            []byte
		status               string
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&orderID, &customerID, &linesJSON, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %q", id)
	}

	lines, err := decodeLines(linesJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "decode lines of order %q", id)
	}

	return order.Rehydrate(orderID, customerID, lines, order.Status(status), createdAt, updatedAt), nil
}

// Save upserts the order, overwriting any previously stored aggregate with
// the same id.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	linesJSON, err := encodeLines(o.Lines())
	if err != nil {
		return errors.Wrapf(err, "encode lines of order %q", o.ID())
	}

	_, err = r.pool.Exec(ctx, saveOrderSQL,
		o.ID(), o.CustomerID(), linesJSON, string(o.Status()), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return errors.Wrapf(err, "save order %q", o.ID())
	}
	return nil
}

func encodeLines(lines []order.Line) ([]byte, error) {
	records := make([]lineRecord, len(lines))
	for i, l := range lines {
		records[i] = lineRecord{
			ProductID:   l.ProductID(),
			ProductName: l.ProductName(),
			UnitPrice:   l.UnitPrice().Amount(),
			Currency:    l.UnitPrice().Currency(),
			Quantity:    l.Quantity(),
		}
	}
	return json.Marshal(records)
}

func decodeLines(raw []byte) ([]order.Line, error) {
	var records []lineRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(records))
	for _, rec := range records {
		price, err := money.New(rec.UnitPrice, rec.Currency)
		if err != nil {
			return nil, errors.Wrapf(err, "unit price of product %q", rec.ProductID)
		}
		line, err := order.NewLine(rec.ProductID, rec.ProductName, price, rec.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "line for product %q", rec.ProductID)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
