// Package config reads runtime settings from the environment, consulting a
// .env file when one is present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the blog service.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DBPath is the directory holding the Badger database.
	DBPath string
	// BasePath is prepended to template paths; empty means the working
	// directory.
	BasePath string
	// PageSize is the default number of posts per listing page.
	PageSize int
}

// Load reads configuration from the environment. Missing keys fall back to
// defaults, so a bare `inkwell serve` works out of the box.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:     getString("INKWELL_ADDR", ":8080"),
		DBPath:   getString("INKWELL_DB_PATH", "data/badger"),
		BasePath: getString("INKWELL_BASE_PATH", ""),
		PageSize: getInt("INKWELL_PAGE_SIZE", 10),
	}
}

func getString(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	asInt, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return asInt
}
