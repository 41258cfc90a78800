package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Security  SecurityConfig
	Matching  MatchingConfig
	Broadcast BroadcastConfig
	Logging   LoggingConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port     int
	Host     string
	UseHTTPS bool
	CertFile string
	KeyFile  string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// SecurityConfig - настройки безопасности
type SecurityConfig struct {
	// bcrypt хэш API ключа для доступа к /metrics (пусто = без авторизации)
	MetricsAPIKeyHash string

	// Лимитирование запросов к API
	RateLimit      float64
	RateLimitBurst float64
}

// MatchingConfig - настройки движка подбора лидеров
type MatchingConfig struct {
	MaxSuggestions       int // сколько лидеров возвращать копиру
	MaxConcurrentScorers int // параллелизм загрузки и скоринга

	// Retry для обращений к хранилищу стратегий
	MaxRetries   int
	RetryBackoff time.Duration
}

// BroadcastConfig - периодические рассылки через WebSocket
type BroadcastConfig struct {
	LeaderboardFreq time.Duration // частота обновления таблиц лидеров
	RankingLimit    int           // размер рассылаемых таблиц
}

// LoggingConfig - настройки логирования
type LoggingConfig struct {
	Level  string
	Format string
}

// Load загружает конфигурацию из переменных окружения.
// .env файл подхватывается, если присутствует рядом с бинарником.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvAsInt("SERVER_PORT", 8080),
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			UseHTTPS: getEnvAsBool("USE_HTTPS", false),
			CertFile: getEnv("CERT_FILE", ""),
			KeyFile:  getEnv("KEY_FILE", ""),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "copytrade"),
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Security: SecurityConfig{
			MetricsAPIKeyHash: getEnv("METRICS_API_KEY_HASH", ""),
			RateLimit:         getEnvAsFloat("RATE_LIMIT", 50),
			RateLimitBurst:    getEnvAsFloat("RATE_LIMIT_BURST", 100),
		},
		Matching: MatchingConfig{
			MaxSuggestions:       getEnvAsInt("MAX_SUGGESTIONS", 5),
			MaxConcurrentScorers: getEnvAsInt("MAX_CONCURRENT_SCORERS", 8),
			MaxRetries:           getEnvAsInt("MAX_RETRIES", 3),
			RetryBackoff:         getEnvAsDuration("RETRY_BACKOFF", 100*time.Millisecond),
		},
		Broadcast: BroadcastConfig{
			LeaderboardFreq: getEnvAsDuration("LEADERBOARD_UPDATE_FREQ", 30*time.Second),
			RankingLimit:    getEnvAsInt("LEADERBOARD_LIMIT", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Валидация числовых диапазонов
	if err := cfg.validateRanges(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRanges проверяет числовые диапазоны параметров
func (c *Config) validateRanges() error {
	// Валидация портов
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Database.Port)
	}

	// Валидация retry параметров
	if c.Matching.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES cannot be negative, got %d", c.Matching.MaxRetries)
	}

	if c.Matching.MaxRetries > 10 {
		return fmt.Errorf("MAX_RETRIES should not exceed 10, got %d", c.Matching.MaxRetries)
	}

	if c.Matching.MaxSuggestions < 1 {
		return fmt.Errorf("MAX_SUGGESTIONS must be positive, got %d", c.Matching.MaxSuggestions)
	}

	if c.Matching.MaxConcurrentScorers < 1 {
		return fmt.Errorf("MAX_CONCURRENT_SCORERS must be positive, got %d", c.Matching.MaxConcurrentScorers)
	}

	if c.Broadcast.LeaderboardFreq <= 0 {
		return fmt.Errorf("LEADERBOARD_UPDATE_FREQ must be positive, got %v", c.Broadcast.LeaderboardFreq)
	}

	if c.Broadcast.RankingLimit < 1 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive, got %d", c.Broadcast.RankingLimit)
	}

	if c.Security.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %v", c.Security.RateLimit)
	}

	if c.Security.RateLimitBurst < c.Security.RateLimit {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least RATE_LIMIT, got %v", c.Security.RateLimitBurst)
	}

	return nil
}

// DSN возвращает строку подключения к базе данных
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// DSNWithoutPassword возвращает строку подключения без пароля (для логирования)
func (d DatabaseConfig) DSNWithoutPassword() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode)
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
