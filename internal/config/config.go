// Пакет config — загрузка и валидация конфигурации Prediction API
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// ServiceName — имя сервиса в логах, health и метриках dephealth.
const ServiceName = "prediction-api"

// Config содержит все параметры конфигурации Prediction API.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 10s)
	ShutdownTimeout time.Duration

	// --- Модель ---

	// Путь к артефакту модели (JSON-экспорт RandomForest)
	ModelPath string

	// --- Кэш предсказаний ---

	// Бэкенд кэша (redis, memory)
	CacheBackend string
	// TTL записи кэша (по умолчанию 1h)
	CacheTTL time.Duration
	// Ёмкость in-memory бэкенда (записей)
	CacheMemorySize int

	// --- Redis ---

	// Адрес Redis (host:port)
	RedisAddr string
	// Пароль Redis (пустой — без аутентификации)
	RedisPassword string
	// Номер базы Redis
	RedisDB int
	// Таймаут операций Redis (dial/read/write)
	RedisTimeout time.Duration

	// --- JWT / JWKS ---

	// URL JWKS endpoint. Пустой — аутентификация выключена,
	// DELETE /cache/clear доступен без токена.
	JWKSURL string
	// Интервал обновления JWKS
	JWKSRefreshInterval time.Duration
	// Таймаут HTTP-клиента JWKS
	JWKSClientTimeout time.Duration
	// Пропускать проверку TLS-сертификата JWKS endpoint (dev-среда)
	JWKSTLSSkipVerify bool
	// Допуск рассинхронизации часов при проверке JWT
	JWTLeeway time.Duration

	// --- Dephealth ---

	// Имя группы в метриках зависимостей
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// PA_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("PA_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("PA_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PA_PORT: значение %d вне диапазона 1-65535", cfg.Port)
	}

	// PA_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("PA_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("PA_LOG_LEVEL: %w", err)
	}

	// PA_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("PA_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PA_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	// PA_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("PA_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_HTTP_READ_TIMEOUT: %w", err)
	}

	// PA_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 60s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("PA_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// PA_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("PA_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	// PA_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 10s)
	cfg.ShutdownTimeout, err = getEnvDuration("PA_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Модель ---

	// PA_MODEL_PATH — путь к артефакту модели
	cfg.ModelPath = getEnvDefault("PA_MODEL_PATH", "model/heart_model.json")

	// --- Кэш предсказаний ---

	// PA_CACHE_BACKEND — бэкенд кэша (по умолчанию redis)
	cfg.CacheBackend = getEnvDefault("PA_CACHE_BACKEND", "redis")
	if cfg.CacheBackend != "redis" && cfg.CacheBackend != "memory" {
		return nil, fmt.Errorf("PA_CACHE_BACKEND: недопустимый бэкенд %q, допустимые: redis, memory", cfg.CacheBackend)
	}

	// PA_CACHE_TTL — TTL записи кэша (по умолчанию 1h)
	cfg.CacheTTL, err = getEnvDuration("PA_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("PA_CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("PA_CACHE_TTL: значение должно быть > 0")
	}

	// PA_CACHE_MEMORY_SIZE — ёмкость in-memory бэкенда (по умолчанию 4096)
	cfg.CacheMemorySize, err = getEnvInt("PA_CACHE_MEMORY_SIZE", 4096)
	if err != nil {
		return nil, fmt.Errorf("PA_CACHE_MEMORY_SIZE: %w", err)
	}
	if cfg.CacheMemorySize <= 0 {
		return nil, fmt.Errorf("PA_CACHE_MEMORY_SIZE: значение должно быть > 0")
	}

	// --- Redis ---

	// PA_REDIS_ADDR — адрес Redis (по умолчанию api.redis:6379)
	cfg.RedisAddr = getEnvDefault("PA_REDIS_ADDR", "api.redis:6379")

	// PA_REDIS_PASSWORD — пароль Redis (по умолчанию пустой)
	cfg.RedisPassword = getEnvDefault("PA_REDIS_PASSWORD", "")

	// PA_REDIS_DB — номер базы (по умолчанию 0)
	cfg.RedisDB, err = getEnvInt("PA_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("PA_REDIS_DB: %w", err)
	}

	// PA_REDIS_TIMEOUT — таймаут операций (по умолчанию 5s)
	cfg.RedisTimeout, err = getEnvDuration("PA_REDIS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_REDIS_TIMEOUT: %w", err)
	}
	if cfg.RedisTimeout <= 0 {
		return nil, fmt.Errorf("PA_REDIS_TIMEOUT: значение должно быть > 0")
	}

	// --- JWT / JWKS ---

	// PA_JWKS_URL — URL JWKS endpoint (по умолчанию пустой: auth выключена)
	cfg.JWKSURL = getEnvDefault("PA_JWKS_URL", "")

	// PA_JWKS_REFRESH_INTERVAL — интервал обновления JWKS (по умолчанию 15s)
	cfg.JWKSRefreshInterval, err = getEnvDuration("PA_JWKS_REFRESH_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// PA_JWKS_CLIENT_TIMEOUT — таймаут HTTP-клиента JWKS (по умолчанию 30s)
	cfg.JWKSClientTimeout, err = getEnvDuration("PA_JWKS_CLIENT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_JWKS_CLIENT_TIMEOUT: %w", err)
	}

	// PA_JWKS_TLS_SKIP_VERIFY — пропуск проверки TLS (по умолчанию false)
	cfg.JWKSTLSSkipVerify, err = getEnvBool("PA_JWKS_TLS_SKIP_VERIFY", false)
	if err != nil {
		return nil, fmt.Errorf("PA_JWKS_TLS_SKIP_VERIFY: %w", err)
	}

	// PA_JWT_LEEWAY — допуск рассинхронизации часов (по умолчанию 5s)
	cfg.JWTLeeway, err = getEnvDuration("PA_JWT_LEEWAY", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_JWT_LEEWAY: %w", err)
	}

	// --- Dephealth ---

	// PA_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию ml-api)
	cfg.DephealthGroup = getEnvDefault("PA_DEPHEALTH_GROUP", "ml-api")

	// PA_DEPHEALTH_CHECK_INTERVAL — интервал проверки (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("PA_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PA_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
