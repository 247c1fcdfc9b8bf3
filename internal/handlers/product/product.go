package product

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"campus_market/internal/cart"
	"campus_market/internal/handlers"
	"campus_market/internal/middleware"
	"campus_market/internal/models"
	"campus_market/internal/store"
	"campus_market/internal/utils"
)

type Handler struct {
	Store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s}
}

// List is public. campus and category query parameters filter by exact match.
func (h *Handler) List(c *gin.Context) {
	filter := store.ProductFilter{
		Campus:   utils.Sanitize(c.Query("campus"), 80),
		Category: utils.Sanitize(c.Query("category"), 80),
	}
	products, err := h.Store.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handlers.ServerError(c, err, "could not load products")
		return
	}
	c.JSON(http.StatusOK, products)
}

type createInput struct {
	Name     interface{} `json:"name"`
	Price    interface{} `json:"price"`
	ImageURL interface{} `json:"imageUrl"`
	Campus   interface{} `json:"campus"`
	Category interface{} `json:"category"`
}

func (h *Handler) Create(c *gin.Context) {
	var input createInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.Fail(c, http.StatusBadRequest, "name and price are required")
		return
	}

	name := utils.Sanitize(input.Name, 120)
	price, ok := parsePrice(input.Price)
	if name == "" || !ok {
		handlers.Fail(c, http.StatusBadRequest, "name and price are required")
		return
	}

	sellerID := middleware.CurrentUser(c).ID
	p := &models.Product{
		Name:     name,
		Price:    price,
		Campus:   utils.Sanitize(input.Campus, 80),
		Category: utils.Sanitize(input.Category, 80),
		SellerID: &sellerID,
	}
	if url := utils.Sanitize(input.ImageURL, 1024); url != "" {
		p.ImageURL = &url
	}

	if err := h.Store.CreateProduct(c.Request.Context(), p); err != nil {
		handlers.ServerError(c, err, "could not create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *Handler) ListMine(c *gin.Context) {
	products, err := h.Store.ProductsBySeller(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		handlers.ServerError(c, err, "could not load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.Store.DeleteProduct(c.Request.Context(), id, middleware.CurrentUser(c).ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		handlers.Fail(c, http.StatusNotFound, "product not found")
	case errors.Is(err, store.ErrForbidden):
		handlers.Fail(c, http.StatusForbidden, "you can only delete your own products")
	case err != nil:
		handlers.ServerError(c, err, "could not delete product")
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
	}
}

// parsePrice accepts a number or numeric string in [0, cart.MaxUnitPrice] and
// rounds it to whole currency units.
func parsePrice(v interface{}) (int, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		if t == "" {
			return 0, false
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > cart.MaxUnitPrice {
		return 0, false
	}
	return int(math.Floor(f + 0.5)), true
}
