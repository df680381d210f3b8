// Package config provides runtime configuration values for the services.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the knobs shared by the storefront, admin and gateway
// binaries. Services ignore the fields they do not use.
type Config struct {
	Port      string
	JWTSecret string

	MetricsEnabled bool
	MetricsToken   string

	DataDir string

	CatalogLoadDelay time.Duration
	LoginDelay       time.Duration

	StorefrontURL string
	AdminURL      string
}

// Load collects configuration from the environment with defaults, reading a
// .env file first if one is present.
func Load(defaultPort string) Config {
	_ = godotenv.Load()

	return Config{
		Port:      getenv("PORT", defaultPort),
		JWTSecret: getenv("JWT_SECRET", "dev-secret"),

		MetricsEnabled: boolenv("METRICS_ENABLED", false),
		MetricsToken:   getenv("METRICS_TOKEN", ""),

		DataDir: getenv("DATA_DIR", "./data"),

		CatalogLoadDelay: durenvms("CATALOG_LOAD_DELAY_MS", 1000),
		LoginDelay:       durenvms("LOGIN_DELAY_MS", 1000),

		StorefrontURL: getenv("STOREFRONT_URL", "http://localhost:8082"),
		AdminURL:      getenv("ADMIN_URL", "http://localhost:8081"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvms(key string, defMs int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defMs) * time.Millisecond
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defMs) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
