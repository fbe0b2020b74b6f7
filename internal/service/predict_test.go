package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

// fakeGateway — управляемая замена модели для тестов.
type fakeGateway struct {
	ready   bool
	version string
	result  *model.PredictionResult
	err     error
	calls   atomic.Int32
}

func (g *fakeGateway) Ready() bool     { return g.ready }
func (g *fakeGateway) Version() string { return g.version }

func (g *fakeGateway) Predict(_ *model.FeatureVector) (*model.PredictionResult, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	res := *g.result
	return &res, nil
}

func validVector() *model.FeatureVector {
	return &model.FeatureVector{
		Age: 63, Sex: 1, Cp: 3, Trestbps: 145, Chol: 233, Fbs: 1,
		Restecg: 0, Thalach: 150, Exang: 0, Oldpeak: 2.3, Slope: 0,
		Ca: 0, Thal: 1,
	}
}

func newPredictService(gateway ScoringGateway) *PredictService {
	cache := NewPredictionCache(newFakeBackend(), time.Hour, testLogger())
	return NewPredictService(gateway, cache, testLogger())
}

func TestPredict_ValidVector(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", result: testResult()}
	ps := newPredictService(gw)

	res, err := ps.Predict(context.Background(), validVector())
	if err != nil {
		t.Fatalf("Ошибка Predict: %v", err)
	}
	if !res.Prediction || res.Confidence != 0.9 || res.RiskLevel != model.RiskHigh {
		t.Errorf("Неожиданный результат: %+v", res)
	}
	if res.ServedFromCache {
		t.Error("Первый запрос не должен обслуживаться из кэша")
	}
	if n := gw.calls.Load(); n != 1 {
		t.Errorf("Обращений к модели: хотели 1, получили %d", n)
	}
}

// TestPredict_InvalidVectorSkipsScoring — невалидный вектор отклоняется
// до обращения к модели и кэшу.
func TestPredict_InvalidVectorSkipsScoring(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", result: testResult()}
	ps := newPredictService(gw)

	v := validVector()
	v.Thal = 5

	_, err := ps.Predict(context.Background(), v)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("Ожидалась ошибка валидации, получено: %v", err)
	}
	if n := gw.calls.Load(); n != 0 {
		t.Errorf("Обращений к модели при невалидном векторе: хотели 0, получили %d", n)
	}
}

func TestPredict_ModelUnavailable(t *testing.T) {
	gw := &fakeGateway{ready: false}
	ps := newPredictService(gw)

	_, err := ps.Predict(context.Background(), validVector())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Ожидалась ErrModelUnavailable, получено: %v", err)
	}
	if n := gw.calls.Load(); n != 0 {
		t.Errorf("Обращений к незагруженной модели: хотели 0, получили %d", n)
	}
}

func TestPredict_NilGateway(t *testing.T) {
	ps := newPredictService(nil)

	_, err := ps.Predict(context.Background(), validVector())
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Ожидалась ErrModelUnavailable, получено: %v", err)
	}
}

// TestPredict_IdenticalVectorsShareComputation — повторный запрос с тем же
// вектором обслуживается из кэша без обращения к модели.
func TestPredict_IdenticalVectorsShareComputation(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", result: testResult()}
	ps := newPredictService(gw)
	ctx := context.Background()

	first, err := ps.Predict(ctx, validVector())
	if err != nil {
		t.Fatalf("Ошибка первого Predict: %v", err)
	}
	second, err := ps.Predict(ctx, validVector())
	if err != nil {
		t.Fatalf("Ошибка второго Predict: %v", err)
	}

	if n := gw.calls.Load(); n != 1 {
		t.Errorf("Обращений к модели: хотели 1, получили %d", n)
	}
	if !second.ServedFromCache {
		t.Error("Повторный запрос должен обслуживаться из кэша")
	}
	if first.Prediction != second.Prediction || first.Confidence != second.Confidence || first.RiskLevel != second.RiskLevel {
		t.Errorf("Результаты расходятся: %+v != %+v", first, second)
	}
}

// TestPredict_VersionChangesKey — смена версии модели инвалидирует кэш
// через namespace ключей.
func TestPredict_VersionChangesKey(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", result: testResult()}
	ps := newPredictService(gw)
	ctx := context.Background()

	if _, err := ps.Predict(ctx, validVector()); err != nil {
		t.Fatalf("Ошибка Predict: %v", err)
	}

	// Новая версия модели — старые записи не используются
	gw.version = "2.0.0"
	res, err := ps.Predict(ctx, validVector())
	if err != nil {
		t.Fatalf("Ошибка Predict после смены версии: %v", err)
	}
	if res.ServedFromCache {
		t.Error("После смены версии модели кэш прошлой версии не должен использоваться")
	}
	if n := gw.calls.Load(); n != 2 {
		t.Errorf("Обращений к модели: хотели 2, получили %d", n)
	}
}

func TestPredict_GatewayError(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", err: errors.New("обход дерева не удался")}
	ps := newPredictService(gw)

	_, err := ps.Predict(context.Background(), validVector())
	if err == nil {
		t.Fatal("Ожидалась ошибка модели")
	}

	// Ошибка не кэшируется
	gw.err = nil
	gw.result = testResult()
	res, err := ps.Predict(context.Background(), validVector())
	if err != nil {
		t.Fatalf("Ошибка Predict после восстановления модели: %v", err)
	}
	if res.ServedFromCache {
		t.Error("После ошибки модели в кэше не должно быть записи")
	}
}

func TestModelReadyAndVersion(t *testing.T) {
	gw := &fakeGateway{ready: true, version: "1.0.0", result: testResult()}
	ps := newPredictService(gw)

	if !ps.ModelReady() {
		t.Error("Ожидалось ModelReady() == true")
	}
	if v := ps.ModelVersion(); v != "1.0.0" {
		t.Errorf("ModelVersion() = %q, ожидалось 1.0.0", v)
	}

	nilPS := newPredictService(nil)
	if nilPS.ModelReady() {
		t.Error("Ожидалось ModelReady() == false без модели")
	}
	if v := nilPS.ModelVersion(); v != "" {
		t.Errorf("ModelVersion() = %q, ожидалась пустая строка", v)
	}
}
