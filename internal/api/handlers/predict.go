// predict.go — обработчик POST /predict.
// Декодирует вектор признаков, делегирует в PredictService и
// транслирует ошибки сервиса в HTTP-статусы: валидация — 422,
// отсутствие модели — 503, остальное — 500.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/errors"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/generated"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/service"
)

// PredictHeartDisease обрабатывает POST /predict.
func (h *APIHandler) PredictHeartDisease(w http.ResponseWriter, r *http.Request) {
	var req generated.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректное тело запроса: "+err.Error())
		return
	}

	vector := model.FeatureVector{
		Age:      req.Age,
		Sex:      req.Sex,
		Cp:       req.Cp,
		Trestbps: req.Trestbps,
		Chol:     req.Chol,
		Fbs:      req.Fbs,
		Restecg:  req.Restecg,
		Thalach:  req.Thalach,
		Exang:    req.Exang,
		Oldpeak:  req.Oldpeak,
		Slope:    req.Slope,
		Ca:       req.Ca,
		Thal:     req.Thal,
	}

	result, err := h.predict.Predict(r.Context(), &vector)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrModelUnavailable):
			apierrors.ScoringUnavailable(w, "Модель не загружена, предсказание недоступно")
		case errors.Is(err, context.Canceled):
			// Клиент ушёл, ответ никто не прочитает
			h.logger.Debug("Запрос отменён клиентом", slog.Any("error", err))
		default:
			h.logger.Error("Ошибка вычисления предсказания", slog.Any("error", err))
			apierrors.InternalError(w, "Внутренняя ошибка сервиса")
		}
		return
	}

	writeJSON(w, http.StatusOK, generated.PredictionResponse{
		Prediction:      result.Prediction,
		Confidence:      result.Confidence,
		RiskLevel:       result.RiskLevel,
		ServedFromCache: result.ServedFromCache,
	})
}
