package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) dashboardOrders(c *gin.Context) {
	page, err := h.deps.DashboardSvc.Orders(c.Request.Context(), currentIdentity(c), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) dashboardLogistics(c *gin.Context) {
	list, err := h.deps.DashboardSvc.Logistics(c.Request.Context(), currentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logistics": list})
}
