package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config is the runtime configuration, read once from the environment.
type Config struct {
	Port        string
	CorsOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	// AuditStrict rejects admin transitions that the lifecycle does not wire
	// (e.g. online on a pending hotel). When false any status may move to any other.
	AuditStrict bool

	// AdminSignup allows role=admin on the public register endpoint.
	AdminSignup bool

	Logger LoggerConfig
	MySQL  MySQLConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
	Rabbit RabbitConfig
	Gemini GeminiConfig
	AMap   AMapConfig
}

type LoggerConfig struct {
	Mode       string // development | production
	FileEnable bool
	Filename   string
	SQLLevel   string // silent | error | warn | info
}

type MySQLConfig struct {
	URL  string // mysql:// URL or raw DSN, wins over the parts below
	User string
	Pass string
	Host string
	Port string
	Name string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	CacheTTL time.Duration
	Prefix   string
}

type MinIOConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	UseSSL      bool
	ImageBucket string
	VideoBucket string
}

type RabbitConfig struct {
	URL   string // empty disables audit events
	Queue string
}

type GeminiConfig struct {
	APIKey  string // checked when the assistant falls back, not at startup
	Model   string
	Timeout time.Duration
}

type AMapConfig struct {
	Key     string
	BaseURL string
	Timeout time.Duration
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:        EnvOrDefault("PORT", "8080"),
		CorsOrigins: parseList(os.Getenv("CORS_ORIGINS")),
		JWTSecret:   EnvOrDefault("JWT_SECRET", "change-me-in-production"),
		JWTTTL:      parseDuration(os.Getenv("JWT_TTL"), 7*24*time.Hour),
		AuditStrict: cast.ToBool(EnvOrDefault("AUDIT_STRICT_TRANSITIONS", "true")),
		AdminSignup: cast.ToBool(EnvOrDefault("ADMIN_REGISTRATION_ENABLED", "true")),
		Logger: LoggerConfig{
			Mode:       EnvOrDefault("LOG_MODE", "development"),
			FileEnable: cast.ToBool(EnvOrDefault("LOG_FILE_ENABLE", "false")),
			Filename:   EnvOrDefault("LOG_FILE", "logs/hotel-marketplace.log"),
			SQLLevel:   EnvOrDefault("LOG_SQL_LEVEL", "warn"),
		},
		MySQL: MySQLConfig{
			URL:  firstNonEmpty(os.Getenv("MYSQL_URL"), os.Getenv("DATABASE_URL")),
			User: EnvOrDefault("DB_USER", "root"),
			Pass: EnvOrDefault("DB_PASS", ""),
			Host: EnvOrDefault("DB_HOST", "127.0.0.1"),
			Port: EnvOrDefault("DB_PORT", "3306"),
			Name: EnvOrDefault("DB_NAME", "hotel_marketplace"),
		},
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       cast.ToInt(EnvOrDefault("REDIS_DB", "0")),
			TLS:      cast.ToBool(EnvOrDefault("REDIS_TLS", "false")),
			CacheTTL: parseDuration(os.Getenv("CACHE_TTL"), 30*time.Second),
			Prefix:   EnvOrDefault("CACHE_PREFIX", "hotel:cache"),
		},
		MinIO: MinIOConfig{
			Endpoint:    EnvOrDefault("MINIO_ENDPOINT", "127.0.0.1:9000"),
			AccessKey:   EnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:   EnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:      cast.ToBool(EnvOrDefault("MINIO_USE_SSL", "false")),
			ImageBucket: EnvOrDefault("MEDIA_IMAGE_BUCKET", "hotel-images"),
			VideoBucket: EnvOrDefault("MEDIA_VIDEO_BUCKET", "hotel-videos"),
		},
		Rabbit: RabbitConfig{
			URL:   firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
			Queue: EnvOrDefault("AUDIT_EVENT_QUEUE", "hotel.audit"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   EnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash-latest"),
			Timeout: parseDuration(os.Getenv("LLM_TIMEOUT"), 20*time.Second),
		},
		AMap: AMapConfig{
			Key:     os.Getenv("AMAP_KEY"),
			BaseURL: EnvOrDefault("AMAP_BASE_URL", "https://restapi.amap.com"),
			Timeout: parseDuration(os.Getenv("AMAP_TIMEOUT"), 8*time.Second),
		},
	}
}

// EnvOrDefault returns the trimmed value of key, or def when unset or blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return os.Getenv("REDIS_ADDR")
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
