package config

import (
	"errors"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const defaultCORSOrigins = "http://localhost:3000,http://localhost:3001,http://localhost:3002," +
	"http://localhost:3003,https://aebonlee.github.io"

type Config struct {
	Env           string
	ServerPort    string
	DatabaseURL   string
	SQLitePath    string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   string
	AuthRateLimit int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogFormat     string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		Env:           strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", EnvDevelopment))),
		ServerPort:    getEnv("PORT", "5002"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "stepup_cloud.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", defaultCORSOrigins),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.TokenTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil || cfg.TokenTTL <= 0 {
		return nil, errors.New("JWT_TTL must be a positive duration such as 24h")
	}
	if cfg.AuthRateLimit, err = strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "10")); err != nil || cfg.AuthRateLimit < 0 {
		return nil, errors.New("AUTH_RATE_LIMIT must be a non-negative integer")
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, errors.New("REDIS_DB must be an integer")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "stepup-cloud-dev-secret"
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// UsePostgres reports whether the production Postgres store should be tried.
func (c *Config) UsePostgres() bool {
	return c.IsProduction() && IsPostgresURL(c.DatabaseURL)
}

// IsPostgresURL accepts postgres:// and postgresql:// connection strings.
func IsPostgresURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "postgres" || u.Scheme == "postgresql"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
