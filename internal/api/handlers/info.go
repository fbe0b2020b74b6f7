// info.go — информационные endpoints: GET / и GET /info.
// Публичные, без аутентификации.
package handlers

import (
	"net/http"

	apierrors "github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/errors"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/config"
)

// GetRoot обрабатывает GET /.
func (h *APIHandler) GetRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.RootResponse{
		Service: config.ServiceName,
		Version: config.Version,
		Docs:    "/openapi.json",
	})
}

// GetModelInfo обрабатывает GET /info.
// Без загруженной модели метаданных нет, endpoint отвечает 503.
func (h *APIHandler) GetModelInfo(w http.ResponseWriter, _ *http.Request) {
	if h.model == nil || !h.model.Ready() {
		apierrors.ScoringUnavailable(w, "Модель не загружена")
		return
	}

	info := h.model.Info()

	writeJSON(w, http.StatusOK, generated.ModelInfoResponse{
		ModelType:   info.ModelType,
		Version:     info.Version,
		Features:    info.Features,
		Description: info.Description,
	})
}
