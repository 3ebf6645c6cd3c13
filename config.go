package main

import (
	"os"
	"strings"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Port        string   // Service port (default: 8083)
	Env         string   // development | production
	RedisURL    string   // Redis connection URL
	StorageDir  string   // Staging directory for async import files
	CORSOrigins []string // Allowed browser origins
}

// LoadConfig loads environment variables into a Config struct.
func LoadConfig() *Config {
	cfg := &Config{
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("APP_ENV"),
		RedisURL:   os.Getenv("REDIS_URL"),
		StorageDir: os.Getenv("BULK_STORAGE_DIR"),
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	if cfg.Port == "" {
		cfg.Port = "8083"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "./data/bulk_imports"
	}

	return cfg
}
