package payment

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"campus_market/internal/coupon"
	"campus_market/internal/handlers"
)

// ValidateCoupon previews a code against a subtotal without creating anything.
func ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	subtotal, err := cast.ToFloat64E(c.DefaultQuery("subtotal", "0"))
	if err != nil || math.IsNaN(subtotal) || math.IsInf(subtotal, 0) {
		handlers.Fail(c, http.StatusBadRequest, "subtotal must be a number")
		return
	}

	res, reason := coupon.Evaluate(subtotal, code)
	c.JSON(http.StatusOK, gin.H{
		"valid":      reason == coupon.ReasonNone,
		"reason":     reason,
		"total":      res.Total,
		"discount":   res.Discount,
		"couponCode": res.Code,
	})
}
