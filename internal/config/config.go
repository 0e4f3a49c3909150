package config

import (
	"errors"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = time.Hour
	defaultBcryptCost = 10
)

var (
	// ErrMissingJWTSecret is returned when no signing secret is configured.
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	// ErrInvalidTokenTTL is returned when TOKEN_TTL cannot be parsed or is not positive.
	ErrInvalidTokenTTL = errors.New("invalid TOKEN_TTL")
	// ErrUnsupportedDriver is returned for a DB_DRIVER other than mysql or postgres.
	ErrUnsupportedDriver = errors.New("unsupported DB_DRIVER")
)

// Config holds application level configuration loaded from environment variables.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	ServerPort       string
	DBDriver         string
	DatabaseDSN      string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	TokenTTL         time.Duration
	BcryptCost       int
	HashWorkers      int
	CORSAllowOrigins []string
	LogLevel         string
	LogFormat        string
	SwaggerHost      string
}

// Load builds Config from an optional .env file and the environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:       getEnv("PORT", "5000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:      getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/jobify?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		BcryptCost:       clampCost(getEnvInt("BCRYPT_COST", defaultBcryptCost)),
		HashWorkers:      getEnvInt("HASH_WORKERS", runtime.NumCPU()),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", defaultTokenTTL.String()))
	if err != nil || ttl <= 0 {
		return nil, ErrInvalidTokenTTL
	}
	cfg.TokenTTL = ttl

	switch cfg.DBDriver {
	case "mysql", "postgres":
	default:
		return nil, ErrUnsupportedDriver
	}

	if cfg.HashWorkers < 1 {
		cfg.HashWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func clampCost(cost int) int {
	if cost < bcrypt.MinCost {
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
