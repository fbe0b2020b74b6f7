// predict.go — сервис предсказаний: валидация вектора признаков,
// канонический ключ кэша, обращение к кэшу и модели.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/cachekey"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

// ErrModelUnavailable — модель не загружена, оценка невозможна.
var ErrModelUnavailable = errors.New("модель не загружена")

// Prometheus-метрики предсказаний.
var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pa_predictions_total",
		Help: "Общее количество предсказаний (по источнику: cache или model).",
	}, []string{"source"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pa_prediction_duration_seconds",
		Help:    "Длительность обработки запроса предсказания.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
)

// ScoringGateway — доступ к загруженной модели.
type ScoringGateway interface {
	// Ready сообщает, готова ли модель к предсказаниям
	Ready() bool
	// Version — версия модели, входит в ключ кэша
	Version() string
	// Predict вычисляет предсказание для валидного вектора
	Predict(v *model.FeatureVector) (*model.PredictionResult, error)
}

// PredictService — вычисление предсказаний через кэш.
type PredictService struct {
	gateway ScoringGateway
	cache   *PredictionCache
	logger  *slog.Logger
}

// NewPredictService создаёт сервис предсказаний.
func NewPredictService(gateway ScoringGateway, cache *PredictionCache, logger *slog.Logger) *PredictService {
	return &PredictService{
		gateway: gateway,
		cache:   cache,
		logger:  logger.With(slog.String("component", "predict_service")),
	}
}

// Predict вычисляет предсказание для вектора признаков.
//
// Невалидный вектор отклоняется до обращения к модели и кэшу:
// ошибка оборачивает model.ErrValidation. Незагруженная модель —
// ErrModelUnavailable.
func (ps *PredictService) Predict(ctx context.Context, v *model.FeatureVector) (*model.PredictionResult, error) {
	start := time.Now()

	if err := v.Validate(); err != nil {
		return nil, err
	}

	if ps.gateway == nil || !ps.gateway.Ready() {
		return nil, ErrModelUnavailable
	}

	key := cachekey.ForFeatures(v, ps.gateway.Version())
	res, err := ps.cache.GetOrCompute(ctx, key, func(_ context.Context) (*model.PredictionResult, error) {
		return ps.gateway.Predict(v)
	})
	if err != nil {
		return nil, fmt.Errorf("вычисление предсказания: %w", err)
	}

	source := "model"
	if res.ServedFromCache {
		source = "cache"
	}
	predictionsTotal.WithLabelValues(source).Inc()
	predictionDuration.Observe(time.Since(start).Seconds())

	ps.logger.Debug("Предсказание вычислено",
		slog.String("key", key),
		slog.Bool("prediction", res.Prediction),
		slog.Float64("confidence", res.Confidence),
		slog.String("risk_level", res.RiskLevel),
		slog.Bool("served_from_cache", res.ServedFromCache),
	)

	return res, nil
}

// ModelReady сообщает, загружена ли модель (для health и info).
func (ps *PredictService) ModelReady() bool {
	return ps.gateway != nil && ps.gateway.Ready()
}

// ModelVersion возвращает версию загруженной модели либо пустую строку.
func (ps *PredictService) ModelVersion() string {
	if ps.gateway == nil {
		return ""
	}
	return ps.gateway.Version()
}
