// Точка входа Prediction API — сервиса предсказания риска сердечных
// заболеваний с кэшированием результатов.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/handlers"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/middleware"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/config"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/predictor"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/server"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/service"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/storage/memcache"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/storage/rediscache"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Prediction API запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("cache_backend", cfg.CacheBackend),
		slog.String("model_path", cfg.ModelPath),
	)

	// --- Инициализация компонентов ---

	// 1. Модель. Ошибка загрузки не прерывает старт: сервис
	// поднимается, /predict и /info отвечают 503, health — fail.
	model, err := predictor.New(cfg.ModelPath)
	if err != nil {
		logger.Warn("Модель не загружена, предсказания недоступны",
			slog.String("model_path", cfg.ModelPath),
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info("Модель загружена",
			slog.String("model_version", model.Version()),
			slog.String("model_path", cfg.ModelPath),
		)
	}

	// 2. Бэкенд кэша
	var backend service.CacheBackend
	var redisBackend *rediscache.Cache

	switch cfg.CacheBackend {
	case "redis":
		redisBackend = rediscache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTimeout)
		backend = redisBackend

		// Недоступный Redis не мешает старту: кэш уходит в bypass
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.RedisTimeout)
		if pingErr := redisBackend.Ping(pingCtx); pingErr != nil {
			logger.Warn("Redis недоступен, кэш работает в режиме bypass",
				slog.String("addr", cfg.RedisAddr),
				slog.String("error", pingErr.Error()),
			)
		} else {
			logger.Info("Redis подключен", slog.String("addr", cfg.RedisAddr))
		}
		cancel()
	case "memory":
		backend = memcache.New(cfg.CacheMemorySize, cfg.CacheTTL)
		logger.Info("Кэш in-memory",
			slog.Int("max_entries", cfg.CacheMemorySize),
			slog.String("ttl", cfg.CacheTTL.String()),
		)
	}

	// 3. Сервисы
	cache := service.NewPredictionCache(backend, cfg.CacheTTL, logger)
	predictSvc := service.NewPredictService(model, cache, logger)

	// 4. topologymetrics — мониторинг JWKS endpoint.
	// Без настроенного JWKS нечего мониторить.
	ctx := context.Background()
	var dephealthSvc *service.DephealthService
	if cfg.JWKSURL != "" {
		dephealthSvc, err = service.NewDephealthService(
			config.ServiceName,
			cfg.DephealthGroup,
			"jwks",
			cfg.JWKSURL,
			cfg.DephealthCheckInterval,
			cfg.JWKSTLSSkipVerify,
			logger,
		)
		if err != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", err.Error()),
			)
			dephealthSvc = nil
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("jwks_url", cfg.JWKSURL),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 5. API handler
	apiHandler := handlers.NewAPIHandler(predictSvc, cache, model, logger)

	// 6. Middleware: request id, логирование, метрики, валидация контракта
	middlewares := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.MetricsMiddleware(),
	}

	doc, err := generated.GetSwagger()
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI контракта", slog.String("error", err.Error()))
		os.Exit(1)
	}
	doc.Servers = nil

	validator, err := middleware.OpenAPIValidator(doc)
	if err != nil {
		logger.Error("Ошибка создания валидатора запросов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	middlewares = append(middlewares, validator)

	// 7. JWT middleware для DELETE /cache/clear
	if cfg.JWKSURL == "" {
		logger.Warn("PA_JWKS_URL не задан, DELETE /cache/clear доступен без токена")
	} else {
		jwtAuth, jwtErr := middleware.NewJWTAuth(middleware.JWTAuthConfig{
			JWKSURL:         cfg.JWKSURL,
			TLSSkipVerify:   cfg.JWKSTLSSkipVerify,
			ClientTimeout:   cfg.JWKSClientTimeout,
			RefreshInterval: cfg.JWKSRefreshInterval,
			JWTLeeway:       cfg.JWTLeeway,
		}, logger)
		if jwtErr != nil {
			// JWT недоступен — запускаем без аутентификации (для разработки)
			logger.Warn("JWT JWKS недоступен, запуск без аутентификации",
				slog.String("jwks_url", cfg.JWKSURL),
				slog.String("error", jwtErr.Error()),
			)
		} else {
			middlewares = append(middlewares,
				server.MiddlewareForPaths(jwtAuth.Middleware(), "/cache/clear"),
				server.MiddlewareForPaths(middleware.RequireScope(middleware.ScopeCacheAdmin), "/cache/clear"),
			)
			logger.Info("JWT аутентификация настроена",
				slog.String("jwks_url", cfg.JWKSURL),
			)
		}
	}

	// 8. Создание и запуск HTTP-сервера (блокирующий вызов)
	srv := server.New(cfg, logger, apiHandler, middlewares...)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- Остановка фоновых процессов ---

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	if redisBackend != nil {
		if closeErr := redisBackend.Close(); closeErr != nil {
			logger.Warn("Ошибка закрытия Redis-клиента", slog.String("error", closeErr.Error()))
		}
	}

	logger.Info("Prediction API остановлен")
}
