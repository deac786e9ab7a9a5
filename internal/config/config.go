package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	OTLPEndpoint string
	Telemetry    TelemetryConfig

	DatabaseURL       string
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

	Storage StorageConfig
	Upload  UploadConfig

	RedisAddr              string
	FormRateLimitPerMinute int64

	AdminUsername string
	AdminPassword string
}

// StorageConfig controls how the storage backend is chosen at startup.
type StorageConfig struct {
	// Backend is auto, pgx, gorm or memory.
	Backend          string
	ConnectTimeoutMS int64
	SeedCatalog      bool
}

// TelemetryConfig carries the LOG_* and OTEL_* settings.
type TelemetryConfig struct {
	LogLevel      string
	LogFormat     string
	OtelEnabled   bool
	OtelProtocol  string
	SamplingRatio float64
}

type UploadConfig struct {
	Dir       string
	AssetsDir string
	MaxBytes  int64
}

const (
	BackendAuto   = "auto"
	BackendPgx    = "pgx"
	BackendGorm   = "gorm"
	BackendMemory = "memory"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "storefront"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		Port:              getenv("PORT", "3000"),
		OTLPEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT", getenv("OTLP_ENDPOINT", "localhost:4317")),
		Telemetry: TelemetryConfig{
			LogLevel:      strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
			LogFormat:     strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
			OtelEnabled:   getenvBool("OTEL_ENABLED", false),
			OtelProtocol:  otlpProtocol(),
			SamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		},
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL", "")),
		DBType:            strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DBHost:            strings.TrimSpace(getenv("DATABASE_HOST", "")),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "storefront"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 20)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 300)),
		Storage: StorageConfig{
			Backend:          normalizeBackend(getenv("STORAGE_BACKEND", BackendAuto)),
			ConnectTimeoutMS: getenvInt64("STORAGE_CONNECT_TIMEOUT_MS", 3000),
			SeedCatalog:      getenvBool("SEED_CATALOG", false),
		},
		Upload: UploadConfig{
			Dir:       getenv("UPLOAD_DIR", "attached_assets"),
			AssetsDir: getenv("ASSETS_DIR", "public/assets"),
			MaxBytes:  getenvInt64("UPLOAD_MAX_BYTES", 5<<20),
		},
		RedisAddr:              strings.TrimSpace(getenv("REDIS_ADDR", "")),
		FormRateLimitPerMinute: getenvInt64("FORM_RATE_LIMIT_PER_MINUTE", 20),
		AdminUsername:          strings.TrimSpace(getenv("ADMIN_USERNAME", "")),
		AdminPassword:          getenv("ADMIN_PASSWORD", ""),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func normalizeBackend(raw string) string {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case BackendPgx, BackendGorm, BackendMemory:
		return value
	default:
		return BackendAuto
	}
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

// otlpProtocol prefers the traces specific override.
func otlpProtocol() string {
	protocol := getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"))
	return strings.ToLower(strings.TrimSpace(protocol))
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
