package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus_market/internal/config"
	"campus_market/internal/handlers"
	"campus_market/internal/handlers/admin"
	"campus_market/internal/handlers/payment"
	"campus_market/internal/handlers/product"
	"campus_market/internal/handlers/user"
	"campus_market/internal/logging"
	"campus_market/internal/middleware"
	"campus_market/internal/ratelimit"
	"campus_market/internal/store"
)

// Deps are the long-lived services the routes are wired to.
type Deps struct {
	Config          *config.AppConfig
	DB              *gorm.DB
	Store           *store.Store
	Users           middleware.UserResolver
	CheckoutLimiter *ratelimit.Limiter
	AdminLimiter    *ratelimit.Limiter
}

// NewRouter builds a gin engine with the global middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(), gin.Recovery(), cors.New(corsConfig(d.Config.CORSOrigins)))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	auth := middleware.AuthRequired(cfg.JWTSecret, d.Users)

	authHandler := user.NewAuthHandler(d.Store, cfg.JWTSecret, cfg.TokenTTL)
	orderHandler := user.NewOrderHandler(d.Store)
	productHandler := product.NewHandler(d.Store)
	checkoutHandler := payment.NewHandler(d.Store)
	adminHandler := admin.NewHandler(d.Store)

	r.GET("/healthz", handlers.Health(d.DB))

	api := r.Group("/api")

	// Auth
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/me", auth, authHandler.Me)

	// Catalog
	api.GET("/products", productHandler.List)
	api.GET("/coupons/validate", payment.ValidateCoupon)

	// Seller / buyer space
	my := api.Group("/my", auth)
	my.GET("/products", productHandler.ListMine)
	my.POST("/products",
		middleware.AuditCriticalActions(middleware.ActionProductCreate, middleware.ResourceProduct),
		productHandler.Create)
	my.DELETE("/products/:id",
		middleware.AuditCriticalActions(middleware.ActionProductDelete, middleware.ResourceProduct),
		productHandler.Delete)
	my.GET("/orders", orderHandler.MyOrders)
	my.GET("/sales", orderHandler.MySales)

	// Checkout
	api.POST("/cart/checkout", middleware.RateLimit(d.CheckoutLimiter), auth, checkoutHandler.Checkout)
	api.GET("/cart/checkout", handlers.MethodNotAllowed(http.MethodPost))

	// Admin
	adminGroup := api.Group("/admin",
		middleware.RateLimit(d.AdminLimiter),
		middleware.RequireAdminKey(cfg.AdminAuthEnabled, cfg.AdminKey),
		middleware.AuditCriticalActions(middleware.ActionAdminRead, middleware.ResourceOrders),
	)
	adminGroup.GET("/summary", adminHandler.Summary)
	adminGroup.GET("/orders", adminHandler.Orders)

	// Legacy flat-file snapshot
	api.GET("/orders", handlers.LegacyOrders(cfg.SnapshotPath))
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
