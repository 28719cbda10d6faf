package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

type storeProductsResponse struct {
	Store      string                      `json:"store"`
	Category   string                      `json:"category,omitempty"`
	Products   domain.Page[domain.Product] `json:"products"`
	Categories []domain.Category           `json:"categories"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *handlers) searchStores(c *gin.Context) {
	found, err := h.deps.CategorySvc.SearchStores(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": found})
}

func (h *handlers) storeProducts(c *gin.Context) {
	ctx := c.Request.Context()
	store := c.Param("store")
	category := c.Query("category")

	page, err := h.deps.ProductSvc.StoreProducts(ctx, store, category, pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	categories, err := h.deps.CategorySvc.List(ctx, store)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, storeProductsResponse{
		Store:      store,
		Category:   category,
		Products:   page,
		Categories: categories,
	})
}

func (h *handlers) sellerProducts(c *gin.Context) {
	page, err := h.deps.ProductSvc.SellerProducts(c.Request.Context(), currentIdentity(c), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) createProduct(c *gin.Context) {
	var req productsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), currentIdentity(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProduct(c *gin.Context) {
	var req productsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), currentIdentity(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.ProductSvc.Delete(c.Request.Context(), currentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
		return
	}
	cat, err := h.deps.CategorySvc.Create(c.Request.Context(), currentIdentity(c), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
