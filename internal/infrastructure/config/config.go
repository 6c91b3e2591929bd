package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	LogMode         string
	AllowOrigins    string
	ShutdownTimeout time.Duration
	MaxOpenConns    int
}

// Load reads env files and then the process environment. Without files a
// missing ./.env is ignored; files named explicitly must exist.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Addr:         getenv("APP_ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogMode:      getenv("LOG_MODE", "development"),
		AllowOrigins: getenv("CORS_ALLOW_ORIGINS", "*"),
	}

	timeout, err := time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	conns, err := strconv.Atoi(getenv("DB_MAX_OPEN_CONNS", "10"))
	if err != nil || conns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be a positive integer, got %q", os.Getenv("DB_MAX_OPEN_CONNS"))
	}
	cfg.MaxOpenConns = conns

	return cfg, nil
}

// ValidateServe checks what the HTTP server cannot start without.
func (c Config) ValidateServe() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

// ValidateMigrate checks what the migrate command needs.
func (c Config) ValidateMigrate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
