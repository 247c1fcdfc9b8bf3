package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"campus_market/internal/cart"
	"campus_market/internal/coupon"
	"campus_market/internal/handlers"
	"campus_market/internal/middleware"
	"campus_market/internal/models"
	"campus_market/internal/store"
	"campus_market/internal/utils"
)

const PickupETAMinutes = 15

type Handler struct {
	Store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s}
}

type Pickup struct {
	Location   string `json:"location"`
	ETAMinutes int    `json:"etaMinutes"`
	Fee        int    `json:"fee"`
}

type CheckoutResponse struct {
	OrderID    string  `json:"orderId"`
	Total      int     `json:"total"`
	Discount   int     `json:"discount"`
	CouponCode *string `json:"couponCode"`
	Pickup     Pickup  `json:"pickup"`
}

// Checkout turns the submitted cart into an order. Known products are charged
// at their stored price; unknown ones at the client snapshot.
func (h *Handler) Checkout(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		handlers.Fail(c, http.StatusBadRequest, "could not read request body")
		return
	}

	payload, err := cart.Parse(body)
	if errors.Is(err, cart.ErrMalformedBody) {
		handlers.Fail(c, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if err != nil {
		handlers.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Shape == cart.ShapeArray {
		fillFromQuery(c, &payload)
	}

	// an empty cart is rejected whatever else the body carries
	items := payload.Items()
	if len(items) == 0 {
		handlers.Fail(c, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	if len(items) > cart.MaxItems {
		handlers.Fail(c, http.StatusUnprocessableEntity, "too many items in cart")
		return
	}

	if payload.Phone == "" {
		handlers.Fail(c, http.StatusBadRequest, "phone is required")
		return
	}

	ctx := c.Request.Context()
	catalog, err := h.catalog(c, cart.ProductIDs(items))
	if err != nil {
		handlers.ServerError(c, err, "could not load product prices")
		return
	}

	lines, subtotal := cart.Reconcile(items, catalog)
	priced := coupon.Apply(float64(subtotal), payload.CouponCode)

	buyerID := middleware.CurrentUser(c).ID
	phone := payload.Phone
	order := &models.Order{
		Campus:     payload.Campus,
		Pickup:     payload.Pickup,
		Total:      priced.Total,
		Discount:   priced.Discount,
		CouponCode: priced.Code,
		BuyerPhone: &phone,
		BuyerID:    &buyerID,
		Items:      make([]models.OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.UnitPrice,
		})
	}

	if err := h.Store.CreateOrder(ctx, order); err != nil {
		handlers.ServerError(c, err, "could not create order")
		return
	}

	zap.S().Infof("✅ order %s placed: %d item(s), total %d", order.ID, len(order.Items), order.Total)
	c.JSON(http.StatusCreated, CheckoutResponse{
		OrderID:    order.ID,
		Total:      order.Total,
		Discount:   order.Discount,
		CouponCode: order.CouponCode,
		Pickup: Pickup{
			Location:   order.Pickup,
			ETAMinutes: PickupETAMinutes,
		},
	})
}

func (h *Handler) catalog(c *gin.Context, ids []string) (cart.Catalog, error) {
	products, err := h.Store.ProductsByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	catalog := make(cart.Catalog, len(products))
	for id, p := range products {
		catalog[id] = cart.CatalogEntry{Name: p.Name, Price: p.Price}
	}
	return catalog, nil
}

// fillFromQuery supplies the order fields a bare-array body cannot carry.
func fillFromQuery(c *gin.Context, p *cart.Payload) {
	p.Campus = utils.Sanitize(c.Query("campus"), 80)
	p.Pickup = utils.Sanitize(c.Query("pickup"), 160)
	p.Phone = utils.Sanitize(c.Query("phone"), 40)
	p.CouponCode = utils.Sanitize(c.Query("couponCode"), 40)
	if p.CouponCode == "" {
		p.CouponCode = utils.Sanitize(c.Query("coupon"), 40)
	}
}
