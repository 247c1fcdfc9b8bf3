package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"campus_market/internal/cache"
	"campus_market/internal/config"
	"campus_market/internal/database"
	"campus_market/internal/logging"
	"campus_market/internal/ratelimit"
	"campus_market/internal/routes"
	"campus_market/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.Logger)
	if err != nil {
		log.Fatalf("❌ cannot initialise logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	cfg.WarnInsecureDefaults()
	if cfg.EnvFile != "" {
		zap.S().Infof("✅ loaded %s", cfg.EnvFile)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		zap.S().Fatalf("❌ database: %v", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		zap.S().Fatalf("❌ migration: %v", err)
	}
	zap.S().Infof("✅ %s database ready", cfg.Database.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		zap.S().Warnf("⚠️ Redis unavailable, falling back to process memory: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	st := store.New(db)
	limitStore, scheduler := rateLimitStore(rdb, cfg.RateLimit)
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	if os.Getenv("GIN_MODE") == "" && cfg.Logger.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(routes.Deps{
		Config: cfg,
		DB:     db,
		Store:  st,
		Users:  cache.NewUserCache(rdb, st),
		CheckoutLimiter: ratelimit.New("checkout",
			cfg.RateLimit.CheckoutMax, cfg.RateLimit.CheckoutWindow, limitStore),
		AdminLimiter: ratelimit.New("admin",
			cfg.RateLimit.AdminMax, cfg.RateLimit.AdminWindow, limitStore),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infof("🚀 campus market listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("❌ server: %v", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorf("❌ forced shutdown: %v", err)
	}
}

// rateLimitStore shares counters through Redis when available. The in-memory
// fallback gets a cron job that drops expired buckets.
func rateLimitStore(rdb *redis.Client, rl config.RateLimitConfig) (ratelimit.Store, *cron.Cron) {
	if rdb != nil {
		return ratelimit.NewRedisStore(rdb), nil
	}

	mem := ratelimit.NewMemoryStore()
	maxAge := rl.CheckoutWindow
	if rl.AdminWindow > maxAge {
		maxAge = rl.AdminWindow
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc("@every 1m", func() {
		if n := mem.Sweep(time.Now(), maxAge); n > 0 {
			zap.S().Debugf("swept %d expired rate-limit buckets", n)
		}
	})
	if err != nil {
		zap.S().Warnf("⚠️ cannot schedule rate-limit sweep: %v", err)
		return mem, nil
	}
	return mem, scheduler
}
