package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
	StorageSQLite   StorageDriver = "sqlite"
	StorageRedis    StorageDriver = "redis"
)

type Config struct {
	Port              string
	ClientTokenSecret string
	ClientTokenTTL    time.Duration
	AllowOrigins      []string

	StorageDriver  StorageDriver
	DatabaseURL    string
	SQLitePath     string
	RedisURL       string
	RedisKeyPrefix string

	NATSURL string

	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOBucketDestinations string
	MinIOPublicURL          string

	DestinationImageMaxBytes int64
	AdminEmails              []string
	WeatherMockDelay         time.Duration

	LogstashTCPAddr string
	LogLevel        string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("DESTINATION_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	cfg := Config{
		Port:              getenv("PORT", "8080"),
		ClientTokenSecret: must("CLIENT_TOKEN_SECRET"),
		ClientTokenTTL:    duration("CLIENT_TOKEN_TTL", 720*time.Hour),
		AllowOrigins:      splitAndTrim(getenv("ALLOW_ORIGINS", "*"), "*"),

		StorageDriver:  StorageDriver(strings.ToLower(getenv("STORAGE_DRIVER", string(StorageMemory)))),
		SQLitePath:     getenv("SQLITE_PATH", "travelwisata.db"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKeyPrefix: getenv("REDIS_KEY_PREFIX", "travelwisata:"),

		NATSURL: getenv("NATS_URL", ""),

		MinIOEndpoint:           getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDestinations: getenv("MINIO_BUCKET_DESTINATIONS", "travelwisata-destinations"),
		MinIOPublicURL:          getenv("MINIO_PUBLIC_URL", ""),

		DestinationImageMaxBytes: imageMax,
		AdminEmails:              splitAndTrim(getenv("ADMIN_EMAILS", ""), ""),
		WeatherMockDelay:         duration("WEATHER_MOCK_DELAY", 300*time.Millisecond),

		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite, StorageRedis:
	case StoragePostgres:
		cfg.DatabaseURL = must("DATABASE_URL")
	default:
		panic("unsupported STORAGE_DRIVER: " + string(cfg.StorageDriver))
	}
	return cfg
}

// UploadsEnabled reports whether enough MinIO settings are present to store
// admin gallery images.
func (c Config) UploadsEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != "" && c.MinIOBucketDestinations != ""
}

func splitAndTrim(input, fallback string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 && fallback != "" {
		return []string{fallback}
	}
	return out
}

func duration(k string, d time.Duration) time.Duration {
	raw := getenv(k, "")
	if raw == "" {
		return d
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s %q, using %s", k, raw, d)
		return d
	}
	return v
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
