// cache.go — кэширующий слой предсказаний поверх внешнего бэкенда.
// Single-flight дедупликация конкурентных вычислений одного ключа,
// TTL-записи, деградация в режим bypass при недоступности бэкенда.
// Административные операции: статистика и очистка namespace.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/cachekey"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

// Prometheus-метрики кэша предсказаний.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_hits_total",
		Help: "Общее количество попаданий в кэш предсказаний.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_misses_total",
		Help: "Общее количество промахов кэша предсказаний.",
	})
	cacheBypassTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_bypass_total",
		Help: "Количество запросов, обслуженных в обход недоступного кэша.",
	})
	cacheBackendErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_backend_errors_total",
		Help: "Количество ошибок операций с бэкендом кэша.",
	})
	cacheWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_write_errors_total",
		Help: "Количество неудачных записей результата в кэш.",
	})
	cacheClearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pa_cache_clears_total",
		Help: "Количество операций очистки кэша предсказаний.",
	})
)

// CacheBackend — внешнее хранилище кэша предсказаний.
// Реализации: rediscache (Redis) и memcache (in-memory LRU).
type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	MemoryUsedBytes(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// ComputeFunc вычисляет результат предсказания при промахе кэша.
type ComputeFunc func(ctx context.Context) (*model.PredictionResult, error)

// PredictionCache — кэш результатов предсказаний.
//
// Недоступность бэкенда никогда не приводит к отказу запроса:
// чтение с ошибкой переводит запрос в режим bypass (вычисление без
// кэширования), ошибка записи логируется и результат отдаётся клиенту.
type PredictionCache struct {
	backend CacheBackend
	ttl     time.Duration
	logger  *slog.Logger
	group   singleflight.Group
	// hits/misses — счётчики с момента старта процесса для /cache/stats
	hits   atomic.Int64
	misses atomic.Int64
}

// NewPredictionCache создаёт кэширующий слой поверх backend с указанным TTL.
func NewPredictionCache(backend CacheBackend, ttl time.Duration, logger *slog.Logger) *PredictionCache {
	return &PredictionCache{
		backend: backend,
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "prediction_cache")),
	}
}

// GetOrCompute возвращает результат по ключу из кэша либо вычисляет его.
//
// Алгоритм:
//  1. Чтение из бэкенда. Ошибка чтения → bypass: вычислить и вернуть
//     без кэширования.
//  2. Попадание → результат с servedFromCache=true.
//  3. Промах → single-flight: конкурентные запросы одного ключа ждут
//     единственное вычисление. Вычисление выполняется в контексте,
//     отвязанном от отмены, поэтому уход одного клиента не срывает
//     остальных ожидающих.
//  4. Результат сохраняется в кэш best-effort и возвращается с
//     servedFromCache=false.
func (pc *PredictionCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (*model.PredictionResult, error) {
	data, ok, err := pc.backend.Get(ctx, key)
	if err != nil {
		cacheBackendErrorsTotal.Inc()
		cacheBypassTotal.Inc()
		pc.logger.Warn("Кэш недоступен, запрос обслуживается напрямую",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return compute(ctx)
	}
	if ok {
		var res model.PredictionResult
		if err := json.Unmarshal(data, &res); err == nil {
			pc.hits.Add(1)
			cacheHitsTotal.Inc()
			res.ServedFromCache = true
			return &res, nil
		}
		// Повреждённая запись трактуется как промах и перезаписывается
		pc.logger.Warn("Повреждённая запись в кэше",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	pc.misses.Add(1)
	cacheMissesTotal.Inc()

	flightCtx := context.WithoutCancel(ctx)
	ch := pc.group.DoChan(key, func() (any, error) {
		return pc.computeAndStore(flightCtx, key, compute)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		// Каждому ожидающему — собственная копия результата
		res := *r.Val.(*model.PredictionResult)
		return &res, nil
	}
}

// computeAndStore вычисляет результат и сохраняет его в кэш best-effort.
func (pc *PredictionCache) computeAndStore(ctx context.Context, key string, compute ComputeFunc) (*model.PredictionResult, error) {
	res, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(res)
	if err != nil {
		pc.logger.Error("Не удалось сериализовать результат предсказания",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return res, nil
	}

	if err := pc.backend.Set(ctx, key, data, pc.ttl); err != nil {
		cacheBackendErrorsTotal.Inc()
		cacheWriteErrorsTotal.Inc()
		pc.logger.Warn("Не удалось сохранить результат в кэш",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return res, nil
}

// Stats возвращает статистику кэша. Hits/misses — in-process счётчики
// с момента старта; keys и memoryBytes запрашиваются у бэкенда.
// При недоступном бэкенде возвращает backend=unavailable с нулями
// вместо ошибки.
func (pc *PredictionCache) Stats(ctx context.Context) *model.CacheStats {
	stats := &model.CacheStats{
		Hits:    pc.hits.Load(),
		Misses:  pc.misses.Load(),
		Backend: model.BackendOK,
	}

	keys, err := pc.backend.CountByPrefix(ctx, cachekey.PrefixAll())
	if err != nil {
		cacheBackendErrorsTotal.Inc()
		pc.logger.Warn("Бэкенд кэша недоступен при запросе статистики",
			slog.String("error", err.Error()),
		)
		stats.Backend = model.BackendUnavailable
		return stats
	}
	stats.Keys = keys

	mem, err := pc.backend.MemoryUsedBytes(ctx)
	if err != nil {
		cacheBackendErrorsTotal.Inc()
		pc.logger.Warn("Не удалось получить занятую память бэкенда",
			slog.String("error", err.Error()),
		)
		stats.Backend = model.BackendUnavailable
		return stats
	}
	stats.MemoryBytes = mem

	return stats
}

// ClearAll удаляет все записи namespace предсказаний, включая записи
// прошлых версий модели. Возвращает число удалённых ключей; при
// недоступном бэкенде — число успевших удалиться (возможно 0),
// но никогда не ошибку.
func (pc *PredictionCache) ClearAll(ctx context.Context) int64 {
	cacheClearsTotal.Inc()

	deleted, err := pc.backend.DeleteByPrefix(ctx, cachekey.PrefixAll())
	if err != nil {
		cacheBackendErrorsTotal.Inc()
		pc.logger.Error("Очистка кэша завершилась с ошибкой",
			slog.Int64("deleted", deleted),
			slog.String("error", err.Error()),
		)
		return deleted
	}

	pc.logger.Info("Кэш предсказаний очищен", slog.Int64("deleted", deleted))
	return deleted
}

// Ping проверяет доступность бэкенда кэша.
func (pc *PredictionCache) Ping(ctx context.Context) error {
	return pc.backend.Ping(ctx)
}
