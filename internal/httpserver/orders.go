package httpserver

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type checkoutResponse struct {
	OrderID     string `json:"orderId"`
	ReceiptPath string `json:"receiptPath"`
}

type receiptResponse struct {
	ID        string             `json:"id"`
	Status    domain.OrderStatus `json:"status"`
	Lines     []cartLineResponse `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
}

func receiptPath(id string) string {
	return "/thank-you?id=" + url.QueryEscape(id)
}

func toReceipt(o domain.Order) receiptResponse {
	lines := make([]cartLineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, cartLineResponse{CartLine: l, Subtotal: l.Subtotal()})
	}
	return receiptResponse{
		ID:        o.ID,
		Status:    o.Status,
		Lines:     lines,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}

func (h *handlers) checkout(c *gin.Context) {
	id, err := h.deps.OrderSvc.Submit(c.Request.Context(), h.cartSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, checkoutResponse{OrderID: id, ReceiptPath: receiptPath(id)})
}

func (h *handlers) getOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceipt(*o))
}

func (h *handlers) reviseOrder(c *gin.Context) {
	var patch ordersvc.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.deps.OrderSvc.Revise(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
