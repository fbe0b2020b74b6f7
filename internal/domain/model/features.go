// Пакет model — доменные модели Prediction API.
// FeatureVector — вектор из 13 клинических признаков пациента,
// единственный вход модели. Поля соответствуют датасету UCI Heart Disease.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation — базовая ошибка валидации входных данных.
// Обёртки уточняют поле и причину; проверять через errors.Is.
var ErrValidation = errors.New("некорректные входные данные")

// FeatureNames — канонический порядок признаков. Этот порядок
// фиксирует и вход модели, и канонизацию для ключей кэша.
var FeatureNames = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs",
	"restecg", "thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

// NumFeatures — размерность вектора признаков.
const NumFeatures = 13

// FeatureVector — неизменяемый вектор признаков одного запроса.
// Создаётся на каждый входящий запрос и не переживает его.
type FeatureVector struct {
	// Age — возраст, лет (0-120)
	Age int
	// Sex — пол: 0 женский, 1 мужской
	Sex int
	// Cp — тип боли в груди (0-3)
	Cp int
	// Trestbps — артериальное давление в покое, мм рт. ст. (0-300)
	Trestbps int
	// Chol — холестерин сыворотки, мг/дл (0-600)
	Chol int
	// Fbs — сахар крови натощак > 120 мг/дл: 0/1
	Fbs int
	// Restecg — результат ЭКГ в покое (0-2)
	Restecg int
	// Thalach — максимальная ЧСС (0-250)
	Thalach int
	// Exang — стенокардия при нагрузке: 0/1
	Exang int
	// Oldpeak — депрессия ST относительно покоя (0.0-10.0)
	Oldpeak float64
	// Slope — наклон пикового сегмента ST (0-2)
	Slope int
	// Ca — число крупных сосудов, окрашенных флюороскопией (0-4)
	Ca int
	// Thal — талассемия (0-3)
	Thal int
}

// Validate проверяет, что все признаки лежат в документированных
// диапазонах. Значения никогда не приводятся к границам — выход за
// диапазон отклоняет запрос целиком до вычисления ключа кэша.
func (v *FeatureVector) Validate() error {
	if err := checkIntRange("age", v.Age, 0, 120); err != nil {
		return err
	}
	if err := checkIntRange("sex", v.Sex, 0, 1); err != nil {
		return err
	}
	if err := checkIntRange("cp", v.Cp, 0, 3); err != nil {
		return err
	}
	if err := checkIntRange("trestbps", v.Trestbps, 0, 300); err != nil {
		return err
	}
	if err := checkIntRange("chol", v.Chol, 0, 600); err != nil {
		return err
	}
	if err := checkIntRange("fbs", v.Fbs, 0, 1); err != nil {
		return err
	}
	if err := checkIntRange("restecg", v.Restecg, 0, 2); err != nil {
		return err
	}
	if err := checkIntRange("thalach", v.Thalach, 0, 250); err != nil {
		return err
	}
	if err := checkIntRange("exang", v.Exang, 0, 1); err != nil {
		return err
	}
	if math.IsNaN(v.Oldpeak) || math.IsInf(v.Oldpeak, 0) {
		return fmt.Errorf("%w: поле oldpeak должно быть конечным числом", ErrValidation)
	}
	if v.Oldpeak < 0.0 || v.Oldpeak > 10.0 {
		return fmt.Errorf("%w: поле oldpeak вне диапазона 0.0-10.0 (получено %g)", ErrValidation, v.Oldpeak)
	}
	if err := checkIntRange("slope", v.Slope, 0, 2); err != nil {
		return err
	}
	if err := checkIntRange("ca", v.Ca, 0, 4); err != nil {
		return err
	}
	if err := checkIntRange("thal", v.Thal, 0, 3); err != nil {
		return err
	}
	return nil
}

// Values возвращает признаки в каноническом порядке FeatureNames.
// Используется моделью для обхода деревьев.
func (v *FeatureVector) Values() [NumFeatures]float64 {
	return [NumFeatures]float64{
		float64(v.Age), float64(v.Sex), float64(v.Cp), float64(v.Trestbps),
		float64(v.Chol), float64(v.Fbs), float64(v.Restecg), float64(v.Thalach),
		float64(v.Exang), v.Oldpeak, float64(v.Slope), float64(v.Ca), float64(v.Thal),
	}
}

// checkIntRange возвращает ошибку валидации для значения вне [min, max].
func checkIntRange(field string, val, min, max int) error {
	if val < min || val > max {
		return fmt.Errorf("%w: поле %s вне диапазона %d-%d (получено %d)", ErrValidation, field, min, max, val)
	}
	return nil
}
