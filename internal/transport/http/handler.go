// Package http is the HTTP adapter: a thin gin layer translating requests
// to domain calls and domain errors to status codes. No business logic
// lives here.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
)

// Handler serves the order API, delegating to the order store for lifecycle
// operations and to the pay service for payment orchestration.
type Handler struct {
	orders order.Store
	pay    *order.PayService
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(orders order.Store, pay *order.PayService) *Handler {
	return &Handler{
		orders: orders,
		pay:    pay,
	}
}

// NewRouter builds the gin engine with all order routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", h.CreateOrder)
		v1.GET("/orders/:id", h.GetOrder)
		v1.POST("/orders/:id/lines", h.AddLine)
		v1.DELETE("/orders/:id/lines/:productID", h.RemoveLine)
		v1.POST("/orders/:id/pay", h.PayOrder)
	}

	return r
}

// --- Wire types ---

type lineReq struct {
	ProductID   string `json:"product_id" binding:"required"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity" binding:"required"`
}

type createOrderReq struct {
	CustomerID string    `json:"customer_id" binding:"required"`
	Lines      []lineReq `json:"lines"`
}

type lineView struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

type orderView struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Status     string     `json:"status"`
	Lines      []lineView `json:"lines"`
	Total      string     `json:"total"`
	Currency   string     `json:"currency"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func viewOf(o *order.Order) (orderView, error) {
	total, err := o.TotalAmount()
	if err != nil {
		return orderView{}, err
	}

	lines := o.Lines()
	views := make([]lineView, len(lines))
	for i, l := range lines {
		views[i] = lineView{
			ProductID:   l.ProductID(),
			ProductName: l.ProductName(),
			UnitPrice:   l.UnitPrice().Amount().StringFixed(2),
			Currency:    l.UnitPrice().Currency(),
			Quantity:    l.Quantity(),
			LineTotal:   l.Total().Amount().StringFixed(2),
		}
	}

	return orderView{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     string(o.Status()),
		Lines:      views,
		Total:      total.Amount().StringFixed(2),
		Currency:   total.Currency(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}, nil
}

func parseLine(req lineReq) (order.Line, error) {
	price, err := money.FromString(req.UnitPrice, req.Currency)
	if err != nil {
		return order.Line{}, err
	}
	return order.NewLine(req.ProductID, req.ProductName, price, req.Quantity)
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, order.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrPaidOrderModification):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, money.ErrNegativeAmount),
		errors.Is(err, money.ErrCurrencyMismatch):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
