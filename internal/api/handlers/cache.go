// cache.go — обработчики административных операций кэша.
// GET /cache/stats — публичная статистика; DELETE /cache/clear —
// полная очистка, закрыта JWT и scope cache:admin (на уровне роутера).
package handlers

import (
	"net/http"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
)

// GetCacheStats обрабатывает GET /cache/stats.
// Недоступность бэкенда не является ошибкой: возвращается вырожденный
// снимок с backend=unavailable.
func (h *APIHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.cache.Stats(r.Context())

	writeJSON(w, http.StatusOK, generated.CacheStatsResponse{
		Hits:        stats.Hits,
		Misses:      stats.Misses,
		Keys:        stats.Keys,
		MemoryBytes: stats.MemoryBytes,
		Backend:     stats.Backend,
	})
}

// ClearCache обрабатывает DELETE /cache/clear.
// При недоступном бэкенде возвращает cleared=0 без ошибки.
func (h *APIHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	cleared := h.cache.ClearAll(r.Context())

	writeJSON(w, http.StatusOK, generated.ClearCacheResponse{
		Cleared: cleared,
	})
}
