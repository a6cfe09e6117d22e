package order

import "github.com/soldera/orderpay/internal/domain/money"

// Line is a single line item of an order: a product reference with its unit
// price and quantity. Immutable once constructed.
type Line struct {
	productID   string
	productName string
	unitPrice   money.Money
	quantity    int
}

// NewLine constructs a validated line. It fails with ErrInvalidQuantity when
// quantity is not a positive integer.
func NewLine(productID, productName string, unitPrice money.Money, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}, nil
}

// ProductID returns the referenced product identifier.
func (l Line) ProductID() string { return l.productID }

// ProductName returns the display name captured at line creation.
func (l Line) ProductName() string { return l.productName }

// UnitPrice returns the price of a single unit.
func (l Line) UnitPrice() money.Money { return l.unitPrice }

// Quantity returns the number of units.
func (l Line) Quantity() int { return l.quantity }

// Total returns unitPrice scaled by quantity.
func (l Line) Total() money.Money {
	// Quantity is validated positive at construction, so Mul cannot fail.
	total, _ := l.unitPrice.Mul(int64(l.quantity))
	return total
}
