// Пакет cachekey — канонизация вектора признаков и вычисление
// ключей кэша предсказаний.
//
// Ключ детерминирован: одинаковые значения признаков дают одинаковый
// ключ независимо от порядка полей во входном JSON (канонизация идёт
// по структуре, а не по wire-представлению). Пространство ключей
// разделено по версии модели, чтобы переобучение инвалидировало
// старые записи без ручной очистки:
//
//	prediction:{версия модели}:{sha256 канонической формы}
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

// Namespace — общий префикс всех ключей сервиса в бэкенде.
const Namespace = "prediction"

// oldpeakPrecision — число знаков после запятой в канонической форме.
// Фиксированная точность исключает дрейф ключей из-за форматирования.
const oldpeakPrecision = 4

// Canonical строит каноническое байтовое представление вектора:
// пары имя:значение в порядке model.FeatureNames, разделённые '|'.
// Вызывающий обязан провалидировать вектор до канонизации.
func Canonical(v *model.FeatureVector) []byte {
	var b strings.Builder
	b.Grow(160)

	writeInt := func(name string, val int) {
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(val))
	}

	writeInt("age", v.Age)
	writeInt("sex", v.Sex)
	writeInt("cp", v.Cp)
	writeInt("trestbps", v.Trestbps)
	writeInt("chol", v.Chol)
	writeInt("fbs", v.Fbs)
	writeInt("restecg", v.Restecg)
	writeInt("thalach", v.Thalach)
	writeInt("exang", v.Exang)
	b.WriteString("|oldpeak:")
	b.WriteString(strconv.FormatFloat(v.Oldpeak, 'f', oldpeakPrecision, 64))
	writeInt("slope", v.Slope)
	writeInt("ca", v.Ca)
	writeInt("thal", v.Thal)

	return []byte(b.String())
}

// Derive вычисляет ключ кэша из канонической формы и версии модели.
// Формат: prediction:{version}:{sha256 hex}. Детерминированно,
// без побочных эффектов.
func Derive(canonical []byte, modelVersion string) string {
	sum := sha256.Sum256(canonical)
	return Namespace + ":" + modelVersion + ":" + hex.EncodeToString(sum[:])
}

// ForFeatures — удобная обёртка: канонизация + вычисление ключа.
func ForFeatures(v *model.FeatureVector, modelVersion string) string {
	return Derive(Canonical(v), modelVersion)
}

// PrefixAll возвращает префикс всего пространства ключей сервиса
// (все версии модели). Используется очисткой и статистикой кэша.
func PrefixAll() string {
	return Namespace + ":"
}
