// health.go — обработчики health endpoints.
// /health — состояние сервиса: fail (503) без модели, degraded (200)
// при недоступном кэше, иначе ok.
// /health/live — liveness probe: процесс жив, всегда 200.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/config"
)

// Статусы /health.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// livePingTimeout ограничивает ping бэкенда в liveness probe:
// зонд не должен зависать на недоступном Redis.
const livePingTimeout = time.Second

// GetHealth обрабатывает GET /health.
func (h *APIHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	modelLoaded := h.predict.ModelReady()
	cacheConnected := h.cache.Ping(r.Context()) == nil

	status := statusOK
	httpStatus := http.StatusOK
	switch {
	case !modelLoaded:
		status = statusFail
		httpStatus = http.StatusServiceUnavailable
	case !cacheConnected:
		status = statusDegraded
	}

	writeJSON(w, httpStatus, generated.HealthResponse{
		Status:         status,
		Timestamp:      time.Now().UTC(),
		Version:        config.Version,
		Service:        config.ServiceName,
		ModelLoaded:    modelLoaded,
		CacheConnected: cacheConnected,
	})
}

// GetHealthLive обрабатывает GET /health/live.
// Статус всегда ok: зонд отвечает за живость процесса, а не
// зависимостей. Поля model_loaded и cache_connected информационные.
func (h *APIHandler) GetHealthLive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), livePingTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, generated.HealthResponse{
		Status:         statusOK,
		Timestamp:      time.Now().UTC(),
		Version:        config.Version,
		Service:        config.ServiceName,
		ModelLoaded:    h.predict.ModelReady(),
		CacheConnected: h.cache.Ping(ctx) == nil,
	})
}
