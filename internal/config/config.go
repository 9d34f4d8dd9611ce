package config

import (
	"os"
	"strconv"
	"time"
)

// InsecureDefaultSecret is used to sign sessions when AUTH_SECRET is not set.
// It is public knowledge; deployments must override it.
const InsecureDefaultSecret = "your-secret-key-change-in-production"

// DatabaseConfig holds relational database settings.
// Driver "sqlite3" uses Path; driver "pgx" uses the host/port/user fields.
type DatabaseConfig struct {
	Driver             string
	Path               string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig selects where uploaded image binaries live.
type StorageConfig struct {
	Driver    string
	UploadDir string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds session signing and cookie settings.
type AuthConfig struct {
	Secret       string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
}

// UsesInsecureSecret reports whether sessions are signed with the built-in default secret.
func (a AuthConfig) UsesInsecureSecret() bool {
	return a.Secret == InsecureDefaultSecret
}

// RedisConfig holds the optional session revocation store settings.
// An empty Addr disables revocation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LocaleConfig holds locale resolution settings.
type LocaleConfig struct {
	Default    string
	CookieName string
}

// UploadConfig bounds image uploads.
type UploadConfig struct {
	MaxFiles     int
	MaxBodyBytes int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded,
// except for the insecure session secret fallback which is reported at startup.
type AppConfig struct {
	AppHost  string
	Port     string
	Env      string
	Database DatabaseConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Locale   LocaleConfig
	Upload   UploadConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("APP_ENV", "production"),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "sqlite3"),
			Path:               getEnv("DB_PATH", "data/database.db"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "disk"),
			UploadDir: getEnv("UPLOAD_DIR", "public/uploads"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			Secret:       getEnv("AUTH_SECRET", InsecureDefaultSecret),
			SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session_token"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Locale: LocaleConfig{
			Default:    getEnv("DEFAULT_LOCALE", "en"),
			CookieName: getEnv("LOCALE_COOKIE_NAME", "preferred_language"),
		},
		Upload: UploadConfig{
			MaxFiles:     getEnvInt("UPLOAD_MAX_FILES", 5),
			MaxBodyBytes: getEnvInt("UPLOAD_MAX_BODY_BYTES", 25*1024*1024),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
