package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ActionProductCreate = "product.create"
	ActionProductDelete = "product.delete"
	ActionAdminRead     = "admin.read"

	ResourceProduct = "product"
	ResourceOrders  = "orders"
)

// AuditCriticalActions writes one audit line per request once the handler has run,
// at Info for 2xx and Warn otherwise.
func AuditCriticalActions(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", c.Param("id")),
			zap.String("user_id", c.GetString(ContextUserID)),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", status),
		}
		logger := zap.L().Named("audit")
		if status >= 200 && status < 300 {
			logger.Info("action succeeded", fields...)
		} else {
			logger.Warn("action failed", fields...)
		}
	}
}
