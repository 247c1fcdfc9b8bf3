package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus_market/internal/analytics"
	"campus_market/internal/handlers"
	"campus_market/internal/store"
)

type Handler struct {
	Store *store.Store
	Now   func() time.Time
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s, Now: time.Now}
}

// Summary aggregates sales for range=7d|30d|all (default 7d).
func (h *Handler) Summary(c *gin.Context) {
	rng := analytics.ParseRange(c.Query("range"))
	now := h.Now().UTC()
	from := rng.From(now)

	orders, err := h.Store.OrdersBetween(c.Request.Context(), from, now)
	if err != nil {
		handlers.ServerError(c, err, "could not load orders")
		return
	}
	c.JSON(http.StatusOK, analytics.Summarize(rng, from, now, orders))
}
