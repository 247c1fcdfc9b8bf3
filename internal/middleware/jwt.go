package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus_market/internal/models"
	"campus_market/internal/utils"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextName   = "name"
)

// UserResolver confirms that the subject of a token still exists.
type UserResolver interface {
	Get(ctx context.Context, id string) (models.PublicUser, error)
}

// AuthRequired validates the Bearer token and puts the caller's identity in the context.
func AuthRequired(secret string, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := utils.ParseJWT(secret, parts[1])
		if err != nil {
			zap.S().Debugf("❌ rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			zap.S().Warnf("⚠️ token for unknown user %s: %v", claims.UserID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextName, user.Name)
		c.Next()
	}
}

// CurrentUser reads the identity stored by AuthRequired.
func CurrentUser(c *gin.Context) models.PublicUser {
	return models.PublicUser{
		ID:    c.GetString(ContextUserID),
		Email: c.GetString(ContextEmail),
		Name:  c.GetString(ContextName),
	}
}
