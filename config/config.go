package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	CORSOrigin string
	Location   *time.Location

	DB      DBConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Storage StorageConfig
	Limits  RateLimitConfig
	Seed    SeedConfig

	ConfirmationDismiss time.Duration
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTL        time.Duration
	SessionSecret string
}

// hanya untuk mode debug/test, Validate menolaknya di release
const devSessionSecret = "geprek-dev-session-secret"

// SessionKey mengembalikan secret cookie keranjang, fallback ke secret dev jika kosong
func (a AuthConfig) SessionKey() string {
	if a.SessionSecret == "" {
		return devSessionSecret
	}
	return a.SessionSecret
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	MenuTTL  time.Duration
	CartTTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig: token bucket per IP untuk semua route, format ulule untuk auth
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
	Auth      string
}

// SeedConfig: data awal untuk instalasi baru
type SeedConfig struct {
	Menu          bool
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminRole     string
}

type StorageConfig struct {
	UploadDir     string
	PublicBaseURL string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE, falling back to local time: %v", err)
		loc = time.Local
	}

	return Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		Location:   loc,
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			DSN:             getEnv("DB_DSN", "geprek.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTTTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
			SessionSecret: getEnv("SESSION_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			MenuTTL:  getEnvDuration("MENU_CACHE_TTL", 5*time.Minute),
			CartTTL:  getEnvDuration("CART_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "geprek.events"),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("UPLOAD_DIR", "public/uploads"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		},
		Limits: RateLimitConfig{
			PerSecond: getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 40),
			Auth:      getEnv("AUTH_RATE_LIMIT", "10-M"),
		},
		Seed: SeedConfig{
			Menu:          getEnv("SEED_MENU", "true") == "true",
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
			AdminName:     getEnv("SEED_ADMIN_NAME", "Administrator"),
			AdminRole:     getEnv("SEED_ADMIN_ROLE", "admin"),
		},
		ConfirmationDismiss: getEnvDuration("CONFIRMATION_DISMISS", 3*time.Second),
	}
}

// Validate menolak start di GIN_MODE=release tanpa secret sendiri
func (c Config) Validate() error {
	if c.GinMode != "release" {
		return nil
	}
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Auth.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s must be set in release mode", strings.Join(missing, " and "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
