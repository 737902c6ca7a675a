package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "local"),
		DatabaseURL: databaseURL(),
	}
}

// databaseURL picks the storage location. DATABASE_URL wins when set
// (e.g. a libsql:// Turso URL for durable serverless storage). Otherwise
// the database file lives in /tmp on restricted-filesystem deployments
// (Vercel), or in a local data directory.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	dir := "data"
	if os.Getenv("VERCEL") != "" {
		dir = "/tmp"
	}
	return "file:" + filepath.Join(dir, "analytics.db")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
