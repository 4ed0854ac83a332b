package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// DBDSN overrides the host/port/user parts when set.
	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTAccessSecret  string
	JWTRefreshSecret string
	AuthEnabled      bool

	CronEnabled    bool
	CronExpireSpec string
	CORSOrigins    []string

	OTLPEndpoint string
	OTLPInsecure bool
}

// LoadEnv reads .env unless ENV_CHEK is set (containers inject variables directly).
func LoadEnv(files ...string) error {
	if os.Getenv("ENV_CHEK") != "" {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func Load() Config {
	return Config{
		HTTPAddr: readString("HTTP_ADDR", ":8080"),
		LogLevel: readString("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(readString("DB_DRIVER", "postgres")),
		DBHost:     readString("DB_HOST", "localhost"),
		DBPort:     readString("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     readString("DB_NAME", "shiftdesk"),
		DBDSN:      os.Getenv("DB_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       readInt("REDIS_DB", 0),
		CacheTTL:      readDuration("CACHE_TTL", 10*time.Minute),

		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AuthEnabled:      readBool("AUTH_ENABLED", false),

		CronEnabled:    readBool("CRON_ENABLED", true),
		CronExpireSpec: os.Getenv("CRON_EXPIRE_SPEC"),
		CORSOrigins:    readList("CORS_ORIGINS", []string{"*"}),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: readBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
}

// Validate reports settings that make the server unusable.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AuthEnabled && (c.JWTAccessSecret == "" || c.JWTRefreshSecret == "") {
		return fmt.Errorf("AUTH_ENABLED requires JWT_ACCESS_SECRET and JWT_REFRESH_SECRET")
	}
	return nil
}

func readString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
