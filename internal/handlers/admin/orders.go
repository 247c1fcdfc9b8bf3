package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"

	"campus_market/internal/handlers"
	"campus_market/internal/models"
)

const (
	DefaultOrderLimit = 50
	MaxOrderLimit     = 500
)

type orderRow struct {
	ID         string `csv:"id"`
	CreatedAt  string `csv:"createdAt"`
	Campus     string `csv:"campus"`
	Pickup     string `csv:"pickup"`
	Total      int    `csv:"total"`
	Discount   int    `csv:"discount"`
	CouponCode string `csv:"couponCode"`
	BuyerPhone string `csv:"buyerPhone"`
	ItemCount  int    `csv:"itemCount"`
}

// Orders lists the most recent orders with their items. format=csv returns one
// row per order instead of JSON.
func (h *Handler) Orders(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	orders, err := h.Store.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		handlers.ServerError(c, err, "could not load orders")
		return
	}

	if c.Query("format") == "csv" {
		data, err := gocsv.MarshalBytes(toRows(orders))
		if err != nil {
			handlers.ServerError(c, err, "could not encode orders")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func parseLimit(raw string) int {
	if raw == "" {
		return DefaultOrderLimit
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return DefaultOrderLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxOrderLimit {
		return MaxOrderLimit
	}
	return n
}

func toRows(orders []models.Order) []*orderRow {
	rows := make([]*orderRow, 0, len(orders))
	for _, o := range orders {
		row := &orderRow{
			ID:        o.ID,
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
			Campus:    o.Campus,
			Pickup:    o.Pickup,
			Total:     o.Total,
			Discount:  o.Discount,
			ItemCount: len(o.Items),
		}
		if o.CouponCode != nil {
			row.CouponCode = *o.CouponCode
		}
		if o.BuyerPhone != nil {
			row.BuyerPhone = *o.BuyerPhone
		}
		rows = append(rows, row)
	}
	return rows
}
