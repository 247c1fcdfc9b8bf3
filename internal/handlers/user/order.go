package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_market/internal/handlers"
	"campus_market/internal/middleware"
	"campus_market/internal/store"
)

type OrderHandler struct {
	Store *store.Store
}

func NewOrderHandler(s *store.Store) *OrderHandler {
	return &OrderHandler{Store: s}
}

// MyOrders lists the caller's purchases, newest first.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.Store.OrdersByBuyer(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		handlers.ServerError(c, err, "could not load orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// MySales lists orders that include the caller's products. Each order only
// carries the items the caller sold.
func (h *OrderHandler) MySales(c *gin.Context) {
	orders, err := h.Store.OrdersForSeller(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		handlers.ServerError(c, err, "could not load sales")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
