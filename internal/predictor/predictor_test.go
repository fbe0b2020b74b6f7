package predictor

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

const testModelPath = "testdata/model.json"

// positiveVector — вектор с высоким риском для тестового леса.
func positiveVector() *model.FeatureVector {
	return &model.FeatureVector{
		Age: 63, Sex: 1, Cp: 3, Trestbps: 145, Chol: 233, Fbs: 1,
		Restecg: 0, Thalach: 150, Exang: 0, Oldpeak: 2.3, Slope: 0,
		Ca: 0, Thal: 1,
	}
}

// negativeVector — вектор с низким риском для тестового леса.
func negativeVector() *model.FeatureVector {
	return &model.FeatureVector{
		Age: 50, Sex: 0, Cp: 0, Trestbps: 120, Chol: 200, Fbs: 0,
		Restecg: 1, Thalach: 170, Exang: 0, Oldpeak: 0.0, Slope: 1,
		Ca: 2, Thal: 3,
	}
}

func mustLoad(t *testing.T) *Predictor {
	t.Helper()
	p, err := New(testModelPath)
	if err != nil {
		t.Fatalf("Не удалось загрузить тестовую модель: %v", err)
	}
	return p
}

// writeArtifact записывает содержимое артефакта во временный файл.
func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Не удалось записать временный артефакт: %v", err)
	}
	return path
}

func TestNew_LoadsArtifact(t *testing.T) {
	p := mustLoad(t)

	if !p.Ready() {
		t.Error("Ожидалось Ready() == true для загруженной модели")
	}
	if p.Version() != "1.0.0" {
		t.Errorf("Ожидалась версия 1.0.0, получено %q", p.Version())
	}

	info := p.Info()
	if info.ModelType != "RandomForestClassifier" {
		t.Errorf("Ожидался тип RandomForestClassifier, получено %q", info.ModelType)
	}
	if info.Description != "Binary classifier for heart disease prediction" {
		t.Errorf("Неожиданное описание модели: %q", info.Description)
	}
	if len(info.Features) != model.NumFeatures {
		t.Fatalf("Ожидалось %d признаков, получено %d", model.NumFeatures, len(info.Features))
	}
	for i, name := range info.Features {
		if name != model.FeatureNames[i] {
			t.Errorf("Признак %d: ожидалось %q, получено %q", i, model.FeatureNames[i], name)
		}
	}
}

func TestNew_FileNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Ожидалась ошибка для отсутствующего файла")
	}
}

func TestNew_InvalidJSON(t *testing.T) {
	path := writeArtifact(t, "{не json")
	_, err := New(path)
	if err == nil {
		t.Fatal("Ожидалась ошибка разбора артефакта")
	}
}

func TestNew_InvalidArtifact(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "нет версии",
			content: `{"model_type":"rf","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[1,1]}]}]}`,
			errPart: "версия",
		},
		{
			name:    "мало признаков",
			content: `{"version":"1.0.0","features":["age","sex"],"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[1,1]}]}]}`,
			errPart: "признаков",
		},
		{
			name:    "неканонический порядок признаков",
			content: `{"version":"1.0.0","features":["sex","age","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[1,1]}]}]}`,
			errPart: "признак 0",
		},
		{
			name:    "пустой лес",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[]}`,
			errPart: "не содержит деревьев",
		},
		{
			name:    "пустое дерево",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[]}]}`,
			errPart: "пустое",
		},
		{
			name:    "лист без распределения и класса",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1}]}]}`,
			errPart: "ни распределения, ни класса",
		},
		{
			name:    "пустое распределение листа",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":-1,"left":-1,"right":-1,"value":[0,0]}]}]}`,
			errPart: "пустое распределение",
		},
		{
			name:    "индекс признака вне диапазона",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":13,"threshold":1,"left":1,"right":2},{"feature":-1,"left":-1,"right":-1,"value":[1,1]},{"feature":-1,"left":-1,"right":-1,"value":[1,1]}]}]}`,
			errPart: "индекс признака",
		},
		{
			name:    "индекс потомка вне диапазона",
			content: `{"version":"1.0.0","features":["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],"trees":[{"nodes":[{"feature":0,"threshold":1,"left":1,"right":5},{"feature":-1,"left":-1,"right":-1,"value":[1,1]}]}]}`,
			errPart: "индексы потомков",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.content)
			_, err := New(path)
			if err == nil {
				t.Fatal("Ожидалась ошибка валидации артефакта")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Ожидалась ошибка с %q, получено: %v", tt.errPart, err)
			}
		})
	}
}

func TestPredict_Positive(t *testing.T) {
	p := mustLoad(t)

	res, err := p.Predict(positiveVector())
	if err != nil {
		t.Fatalf("Ошибка предсказания: %v", err)
	}

	if !res.Prediction {
		t.Error("Ожидалось положительное предсказание")
	}
	// Листья: [2,8] -> 0.8, [1,9] -> 0.9, [3,7] -> 0.7, среднее 0.8
	if math.Abs(res.Confidence-0.8) > 1e-9 {
		t.Errorf("Ожидалась уверенность 0.8, получено %v", res.Confidence)
	}
	if res.RiskLevel != model.RiskHigh {
		t.Errorf("Ожидался уровень риска %q, получено %q", model.RiskHigh, res.RiskLevel)
	}
	if res.ServedFromCache {
		t.Error("Предиктор не должен выставлять servedFromCache")
	}
}

func TestPredict_Negative(t *testing.T) {
	p := mustLoad(t)

	res, err := p.Predict(negativeVector())
	if err != nil {
		t.Fatalf("Ошибка предсказания: %v", err)
	}

	if res.Prediction {
		t.Error("Ожидалось отрицательное предсказание")
	}
	// Листья: [7,3] -> 0.7, [6,4] -> 0.6, [8,2] -> 0.8, среднее 0.7
	if math.Abs(res.Confidence-0.7) > 1e-9 {
		t.Errorf("Ожидалась уверенность 0.7, получено %v", res.Confidence)
	}
	if res.RiskLevel != model.RiskLow {
		t.Errorf("Ожидался уровень риска %q, получено %q", model.RiskLow, res.RiskLevel)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := mustLoad(t)
	v := positiveVector()

	first, err := p.Predict(v)
	if err != nil {
		t.Fatalf("Ошибка предсказания: %v", err)
	}
	for i := 0; i < 100; i++ {
		res, err := p.Predict(v)
		if err != nil {
			t.Fatalf("Итерация %d: ошибка предсказания: %v", i, err)
		}
		if *res != *first {
			t.Fatalf("Итерация %d: результат изменился: %+v != %+v", i, res, first)
		}
	}
}

func TestPredict_VoteOnlyFallback(t *testing.T) {
	content := `{
		"model_type": "RandomForestClassifier",
		"version": "1.0.0",
		"features": ["age","sex","cp","trestbps","chol","fbs","restecg","thalach","exang","oldpeak","slope","ca","thal"],
		"trees": [
			{"nodes": [
				{"feature": 12, "threshold": 2.5, "left": 1, "right": 2},
				{"feature": -1, "left": -1, "right": -1, "class": 1},
				{"feature": -1, "left": -1, "right": -1, "class": 0}
			]},
			{"nodes": [
				{"feature": 11, "threshold": 0.5, "left": 1, "right": 2},
				{"feature": -1, "left": -1, "right": -1, "class": 1},
				{"feature": -1, "left": -1, "right": -1, "class": 0}
			]},
			{"nodes": [
				{"feature": 2, "threshold": 0.5, "left": 1, "right": 2},
				{"feature": -1, "left": -1, "right": -1, "class": 0},
				{"feature": -1, "left": -1, "right": -1, "class": 1}
			]}
		]
	}`
	p, err := New(writeArtifact(t, content))
	if err != nil {
		t.Fatalf("Не удалось загрузить артефакт без распределений: %v", err)
	}

	res, err := p.Predict(positiveVector())
	if err != nil {
		t.Fatalf("Ошибка предсказания: %v", err)
	}
	if !res.Prediction {
		t.Error("Ожидалось положительное предсказание по голосованию")
	}
	if res.Confidence != 0.75 {
		t.Errorf("Ожидалась fallback-уверенность 0.75, получено %v", res.Confidence)
	}
	if res.RiskLevel != model.RiskHigh {
		t.Errorf("Ожидался уровень риска %q, получено %q", model.RiskHigh, res.RiskLevel)
	}

	res, err = p.Predict(negativeVector())
	if err != nil {
		t.Fatalf("Ошибка предсказания: %v", err)
	}
	if res.Prediction {
		t.Error("Ожидалось отрицательное предсказание по голосованию")
	}
	if res.RiskLevel != model.RiskLow {
		t.Errorf("Ожидался уровень риска %q, получено %q", model.RiskLow, res.RiskLevel)
	}
}

func TestPredict_NilPredictor(t *testing.T) {
	var p *Predictor
	if p.Ready() {
		t.Error("Ожидалось Ready() == false для nil-предиктора")
	}
	if _, err := p.Predict(positiveVector()); err == nil {
		t.Error("Ожидалась ошибка предсказания на незагруженной модели")
	}
	if v := p.Version(); v != "" {
		t.Errorf("Ожидалась пустая версия, получено %q", v)
	}
}

func TestInfo_CopiesFeatures(t *testing.T) {
	p := mustLoad(t)

	info := p.Info()
	info.Features[0] = "поддельный"

	if p.Info().Features[0] != "age" {
		t.Error("Info() должен возвращать копию списка признаков")
	}
}
