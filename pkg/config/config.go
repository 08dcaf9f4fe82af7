package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	// APIBaseURL is the commerce API endpoint. Fixed per deployment, not
	// switchable at runtime.
	APIBaseURL string

	// StateDir holds the persisted client state (token, profile, guest cart).
	StateDir string

	HTTPTimeoutSeconds int
}

func Load() Config {
	// A missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	return Config{
		AppEnv:             getEnv("APP_ENV", "dev"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		APIBaseURL:         getEnv("STOREFRONT_API_URL", "https://adhithya-electronics-api.onrender.com"),
		StateDir:           getEnv("STOREFRONT_STATE_DIR", defaultStateDir()),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
	}
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(base, "storefront")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
