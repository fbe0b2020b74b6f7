package model

// Категории риска в ответе /predict.
const (
	// RiskLow — заболевание не выявлено либо выявлено с низкой уверенностью
	RiskLow = "low"
	// RiskModerate — положительное предсказание со средней уверенностью
	RiskModerate = "moderate"
	// RiskHigh — положительное предсказание с высокой уверенностью
	RiskHigh = "high"
)

// Пороги уверенности для категорий риска положительного предсказания.
const (
	highRiskThreshold     = 0.7
	moderateRiskThreshold = 0.3
)

// PredictionResult — результат предсказания модели.
// В кэше хранится в виде JSON; ServedFromCache выставляется на пути
// наружу (true только при попадании в кэш) и в хранимой копии роли
// не играет.
type PredictionResult struct {
	// Prediction — true, если выявлен риск сердечного заболевания
	Prediction bool `json:"prediction"`
	// Confidence — уверенность модели в предсказанном классе (0.0-1.0)
	Confidence float64 `json:"confidence"`
	// RiskLevel — категория риска: low, moderate, high
	RiskLevel string `json:"riskLevel"`
	// ServedFromCache — true, если результат взят из кэша без вызова модели
	ServedFromCache bool `json:"servedFromCache"`
}

// DetermineRiskLevel вычисляет категорию риска по предсказанию
// и уверенности. Отрицательное предсказание — всегда low;
// положительное классифицируется по порогам уверенности.
func DetermineRiskLevel(prediction bool, confidence float64) string {
	if !prediction {
		return RiskLow
	}
	switch {
	case confidence >= highRiskThreshold:
		return RiskHigh
	case confidence >= moderateRiskThreshold:
		return RiskModerate
	default:
		return RiskLow
	}
}

// CacheStats — снимок статистики кэша предсказаний на момент запроса.
// Hits и Misses считаются процессом с момента запуска; Keys и
// MemoryBytes запрашиваются у бэкенда и обнуляются при его
// недоступности.
type CacheStats struct {
	// Hits — попадания в кэш
	Hits int64 `json:"hits"`
	// Misses — промахи (выполненные вычисления)
	Misses int64 `json:"misses"`
	// Keys — число ключей в пространстве prediction:*
	Keys int64 `json:"keys"`
	// MemoryBytes — память, занятая бэкендом кэша
	MemoryBytes int64 `json:"memoryBytes"`
	// Backend — состояние бэкенда: ok, unavailable
	Backend string `json:"backend"`
}

// Состояния бэкенда в CacheStats.
const (
	// BackendOK — бэкенд отвечает
	BackendOK = "ok"
	// BackendUnavailable — бэкенд недоступен, снимок вырожденный
	BackendUnavailable = "unavailable"
)

// ModelInfo — метаданные загруженной модели для GET /info.
type ModelInfo struct {
	// ModelType — тип модели (например, RandomForestClassifier)
	ModelType string `json:"model_type"`
	// Version — версия модели; входит в пространство ключей кэша
	Version string `json:"version"`
	// Features — ожидаемые признаки в каноническом порядке
	Features []string `json:"features"`
	// Description — описание модели
	Description string `json:"description"`
}
