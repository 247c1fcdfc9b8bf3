package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fail aborts with {"error": msg}.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// ServerError logs err and answers 500 with msg and the error text as details.
func ServerError(c *gin.Context, err error, msg string) {
	zap.L().Error("❌ "+msg,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   msg,
		"details": err.Error(),
	})
}

// MethodNotAllowed points callers at the method the route accepts.
func MethodNotAllowed(allowed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", allowed)
		Fail(c, http.StatusMethodNotAllowed, "method not allowed, use "+allowed)
	}
}
