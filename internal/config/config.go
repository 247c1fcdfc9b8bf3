package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	DefaultPort      = "8080"
	DefaultAdminKey  = "dev-admin-key"
	DefaultJWTSecret = "dev-secret-change-me"
)

type DatabaseConfig struct {
	Type string // sqlite | postgres
	DSN  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type LoggerConfig struct {
	Mode     string // production | development
	Filename string
}

type RateLimitConfig struct {
	CheckoutMax    int
	CheckoutWindow time.Duration
	AdminMax       int
	AdminWindow    time.Duration
}

type AppConfig struct {
	Port             string
	AdminKey         string
	AdminAuthEnabled bool
	JWTSecret        string
	TokenTTL         time.Duration
	SnapshotPath     string
	CORSOrigins      []string
	Database         DatabaseConfig
	Redis            RedisConfig
	Logger           LoggerConfig
	RateLimit        RateLimitConfig

	// EnvFile is the dotenv file that was loaded, empty when none was found.
	EnvFile string
	// insecure lists the settings that fell back to a development default.
	insecure []string
}

// Load reads .env (when present) and the process environment.
func Load() *AppConfig {
	cfg := &AppConfig{}
	if err := godotenv.Load(".env"); err == nil {
		cfg.EnvFile = ".env"
	}

	cfg.Port = cfg.secret("PORT", DefaultPort, false)
	if _, err := cast.ToIntE(cfg.Port); err != nil {
		cfg.Port = DefaultPort
	}
	cfg.AdminKey = cfg.secret("ADMIN_KEY", DefaultAdminKey, true)
	cfg.JWTSecret = cfg.secret("JWT_SECRET", DefaultJWTSecret, true)
	cfg.AdminAuthEnabled = cast.ToBool(getEnv("ADMIN_AUTH_ENABLED", "false"))
	cfg.TokenTTL = 7 * 24 * time.Hour
	cfg.SnapshotPath = getEnv("ORDERS_SNAPSHOT_PATH", "data/orders.json")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	cfg.Database = DatabaseConfig{
		Type: strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DSN:  getEnv("DB_DSN", "campus_market.db"),
	}
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       cast.ToInt(getEnv("REDIS_DB", "0")),
	}
	cfg.Logger = LoggerConfig{
		Mode:     getEnv("LOG_MODE", "development"),
		Filename: getEnv("LOG_FILE", ""),
	}
	cfg.RateLimit = RateLimitConfig{
		CheckoutMax:    10,
		CheckoutWindow: time.Minute,
		AdminMax:       60,
		AdminWindow:    time.Minute,
	}
	return cfg
}

// WarnInsecureDefaults logs every security setting left at its development value.
// Call it once the global logger is installed.
func (c *AppConfig) WarnInsecureDefaults() {
	for _, key := range c.insecure {
		zap.S().Warnf("⚠️ %s not set, using an insecure development default", key)
	}
	if !c.AdminAuthEnabled {
		zap.S().Warn("⚠️ admin endpoints are unauthenticated (ADMIN_AUTH_ENABLED=false)")
	}
}

func (c *AppConfig) secret(key, def string, sensitive bool) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if sensitive {
		c.insecure = append(c.insecure, key)
	}
	return def
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
