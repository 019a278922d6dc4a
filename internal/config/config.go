package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	AdminToken  string

	Telemetry TelemetryConfig
	Customers CustomersConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBMigrate         bool

	Redis RedisConfig
	S3    S3Config
}

// CustomersConfig selects where customer offers are loaded from.
type CustomersConfig struct {
	Sources       []string
	File          string
	Watch         bool
	RedisKey      string
	ReloadLockTTL time.Duration
	ReloadRate    float64
	ReloadBurst   int
}

// TelemetryConfig covers logging and OpenTelemetry export.
type TelemetryConfig struct {
	LogLevel      string
	LogFormat     string
	OtelEnabled   bool
	OtlpEndpoint  string
	OtlpProtocol  string
	SamplingRatio float64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

type S3Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	Key            string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
}

const (
	SourceStatic   = "static"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourceDatabase = "database"
	SourceRedis    = "redis"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "roommanager"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		AdminToken:  strings.TrimSpace(getenv("ADMIN_TOKEN", "")),
		Telemetry: TelemetryConfig{
			LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
			LogFormat:     strings.ToLower(getenv("LOG_FORMAT", "json")),
			OtelEnabled:   getenvBool("OTEL_ENABLED", false),
			OtlpEndpoint:  getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			OtlpProtocol:  strings.ToLower(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
			SamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		},
		Customers: CustomersConfig{
			Sources:       parseList(getenv("CUSTOMER_SOURCE", SourceFile)),
			File:          getenv("CUSTOMERS_FILE", "customers.json"),
			Watch:         getenvBool("CUSTOMERS_WATCH", false),
			RedisKey:      getenv("CUSTOMERS_REDIS_KEY", "roommanager:customers"),
			ReloadLockTTL: getenvDuration("CUSTOMERS_RELOAD_LOCK_TTL", 30*time.Second),
			ReloadRate:    getenvFloat("CUSTOMERS_RELOAD_RATE", 0.2),
			ReloadBurst:   int(getenvInt64("CUSTOMERS_RELOAD_BURST", 3)),
		},
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 2)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 10)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 300)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 60)),
		DBMigrate:         getenvBool("DATABASE_MIGRATE", true),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       int(getenvInt64("REDIS_DB", 0)),
		},
		S3: S3Config{
			Endpoint:       strings.TrimSpace(getenv("S3_ENDPOINT", "")),
			Region:         getenv("S3_REGION", "eu-central-1"),
			Bucket:         strings.TrimSpace(getenv("S3_BUCKET", "")),
			Key:            strings.TrimSpace(getenv("S3_KEY", "customers.json")),
			AccessKey:      strings.TrimSpace(getenv("S3_ACCESS_KEY", "")),
			SecretKey:      strings.TrimSpace(getenv("S3_SECRET_KEY", "")),
			ForcePathStyle: getenvBool("S3_FORCE_PATH_STYLE", false),
		},
	}
}

// UsesSource reports whether name is one of the configured customer sources.
func (c Config) UsesSource(name string) bool {
	for _, s := range c.Customers.Sources {
		if s == name {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
