package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Auth     AuthConfig
	Flash    FlashConfig
	Notify   NotifyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// DSN pgx 連線字串，時區固定 UTC
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
}

type AuthConfig struct {
	JWTSecret  string
	CookieName string
	TokenTTL   time.Duration
}

type FlashConfig struct {
	CookieName string
	TTL        time.Duration
}

// NotifyBackend 通知佇列的實作：memory 或 redis
type NotifyBackend string

const (
	NotifyBackendMemory NotifyBackend = "memory"
	NotifyBackendRedis  NotifyBackend = "redis"
)

type NotifyConfig struct {
	Backend    NotifyBackend
	BufferSize int
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Server:   GetServerConfig(),
		Auth:     GetAuthConfig(),
		Flash:    GetFlashConfig(),
		Notify:   GetNotifyConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 10,
		MinConns: 1,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			LogLevel:       "info",
		},
		Auth: AuthConfig{
			JWTSecret:  "test-secret",
			CookieName: "access_token",
			TokenTTL:   time.Hour,
		},
		Flash: FlashConfig{
			CookieName: "flash_sid",
			TTL:        time.Minute,
		},
		Notify: NotifyConfig{
			Backend:    NotifyBackendMemory,
			BufferSize: 16,
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:           getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8080")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		// 正式環境務必覆寫 JWT_SECRET
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		CookieName: getEnv("AUTH_COOKIE", "access_token"),
		TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 60*24)) * time.Minute,
	}
}

func GetFlashConfig() FlashConfig {
	return FlashConfig{
		CookieName: getEnv("FLASH_COOKIE", "flash_sid"),
		TTL:        time.Duration(getEnvInt("FLASH_TTL_SECONDS", 300)) * time.Second,
	}
}

func GetNotifyConfig() NotifyConfig {
	backend := NotifyBackend(strings.ToLower(getEnv("NOTIFY_BACKEND", string(NotifyBackendRedis))))
	if backend != NotifyBackendMemory && backend != NotifyBackendRedis {
		backend = NotifyBackendRedis
	}

	return NotifyConfig{
		Backend:    backend,
		BufferSize: getEnvInt("NOTIFY_BUFFER", 256),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt 非正整數一律回傳 fallback
func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
