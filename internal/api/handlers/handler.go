// handler.go — APIHandler реализует generated.ServerInterface.
// Обработчики разнесены по файлам: predict.go, cache.go, health.go,
// info.go. Бизнес-логика живёт в сервисном слое, хендлеры только
// декодируют запрос, вызывают сервис и кодируют ответ.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/predictor"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/service"
)

// Проверка реализации интерфейса на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// APIHandler — единая реализация ServerInterface Prediction API.
type APIHandler struct {
	predict     *service.PredictService
	cache       *service.PredictionCache
	model       *predictor.Predictor
	promHandler http.Handler
	logger      *slog.Logger
}

// NewAPIHandler создаёт обработчик API.
// model может быть nil — сервис стартует без модели, /predict и /info
// отвечают 503 до рестарта с корректным артефактом.
func NewAPIHandler(
	predict *service.PredictService,
	cache *service.PredictionCache,
	model *predictor.Predictor,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		predict:     predict,
		cache:       cache,
		model:       model,
		promHandler: promhttp.Handler(),
		logger:      logger.With(slog.String("component", "api_handler")),
	}
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
