package config

import (
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port       string
	Env        string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	BcryptCost int
}

func Load() Config {
	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		MongoURI:   getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:    getEnv("MONGO_DB", "taskbox"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
