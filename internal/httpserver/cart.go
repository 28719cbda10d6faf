package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/cartstore"
	"storefront/internal/domain"
)

type cartLineResponse struct {
	domain.CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"itemCount"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type addItemResponse struct {
	Outcome string       `json:"outcome"`
	Message string       `json:"message"`
	Cart    cartResponse `json:"cart"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, cartLineResponse{CartLine: l, Subtotal: l.Subtotal()})
	}
	return cartResponse{Lines: lines, Total: cart.Total(), ItemCount: cart.ItemCount()}
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Carts.Load(c.Request.Context(), h.cartSession(c))
	if err != nil {
		h.fail(c, cartErr(err))
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}
	ctx := c.Request.Context()
	session := h.cartSession(c)

	p, err := h.deps.ProductSvc.Get(ctx, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	cart, outcome, err := h.deps.Carts.AddOrIncrement(ctx, session, *p)
	if err != nil {
		h.fail(c, cartErr(err))
		return
	}
	label := "added"
	if outcome == cartstore.Incremented {
		label = "incremented"
	}
	c.JSON(http.StatusOK, addItemResponse{
		Outcome: label,
		Message: outcome.Message(p.Name),
		Cart:    toCartResponse(cart),
	})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	cart, err := h.deps.Carts.Remove(c.Request.Context(), h.cartSession(c), c.Param("id"))
	if err != nil {
		h.fail(c, cartErr(err))
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// cartErr classifies cart storage errors, leaving validation errors as is.
func cartErr(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return domain.StoreFailure("save cart", err)
}
