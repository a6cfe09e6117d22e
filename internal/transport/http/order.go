package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/soldera/orderpay/internal/domain/money"
	"github.com/soldera/orderpay/internal/domain/order"
)

// CreateOrder creates a draft order, optionally with initial lines.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	o := order.New(req.CustomerID)
	for _, lr := range req.Lines {
		line, err := parseLine(lr)
		if err != nil {
			writeLineError(c, err)
			return
		}
		if err := o.AddLine(line); err != nil {
			writeDomainError(c, err)
			return
		}
	}

	if err := h.orders.Save(c.Request.Context(), o); err != nil {
		writeDomainError(c, err)
		return
	}

	view, err := viewOf(o)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetOrder returns a snapshot of one order.
func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	view, err := viewOf(o)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddLine appends a line to an order and persists the result.
func (h *Handler) AddLine(c *gin.Context) {
	var req lineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	line, err := parseLine(req)
	if err != nil {
		writeLineError(c, err)
		return
	}
	if err := o.AddLine(line); err != nil {
		writeDomainError(c, err)
		return
	}
	if err := h.orders.Save(c.Request.Context(), o); err != nil {
		writeDomainError(c, err)
		return
	}

	view, err := viewOf(o)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveLine removes all lines matching a product id and persists the result.
func (h *Handler) RemoveLine(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := o.RemoveLine(c.Param("productID")); err != nil {
		writeDomainError(c, err)
		return
	}
	if err := h.orders.Save(c.Request.Context(), o); err != nil {
		writeDomainError(c, err)
		return
	}

	view, err := viewOf(o)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PayOrder runs the payment orchestration and returns its outcome verbatim.
// The orchestrator never raises: a successful charge is 200, everything else
// (decline, missing order, ineligible order, infrastructure fault) is 402
// with the outcome body.
func (h *Handler) PayOrder(c *gin.Context) {
	out := h.pay.Execute(c.Request.Context(), c.Param("id"))
	if out.Success {
		c.JSON(http.StatusOK, out)
		return
	}
	c.JSON(http.StatusPaymentRequired, out)
}

// writeLineError maps line construction errors: domain rejections keep their
// mapping, anything else (unparseable price) is a plain bad request.
func writeLineError(c *gin.Context, err error) {
	if errors.Is(err, order.ErrInvalidQuantity) ||
		errors.Is(err, money.ErrNegativeAmount) ||
		errors.Is(err, money.ErrCurrencyMismatch) {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
