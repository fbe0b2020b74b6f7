// Пакет predictor — загрузка артефакта модели и вычисление предсказаний.
//
// Артефакт — JSON-экспорт обученного RandomForest (model/model_run.py):
// список деревьев с узлами {feature, threshold, left, right} и листьями,
// несущими распределение классов (value) либо голый класс (class).
// Вычисление детерминировано: обход каждого дерева по правилу
// «значение признака <= порога — влево, иначе вправо», усреднение
// распределений листьев, класс — argmax усреднённого распределения.
package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/MojiburRahaman/heart-disease-prediction-api/internal/domain/model"
)

// fallbackConfidence — уверенность, когда листья не несут распределений
// и доступно только голосование деревьев.
const fallbackConfidence = 0.75

// treeNode — узел дерева решений. Лист обозначается left == -1.
type treeNode struct {
	// Feature — индекс признака в каноническом порядке (-1 для листа)
	Feature int `json:"feature"`
	// Threshold — порог разбиения: значение <= порога уходит влево
	Threshold float64 `json:"threshold"`
	// Left, Right — индексы дочерних узлов (-1 для листа)
	Left  int `json:"left"`
	Right int `json:"right"`
	// Value — распределение классов в листе [негативных, позитивных]
	Value []float64 `json:"value,omitempty"`
	// Class — класс листа для артефактов без распределений
	Class *int `json:"class,omitempty"`
}

// tree — одно дерево леса.
type tree struct {
	Nodes []treeNode `json:"nodes"`
}

// artifact — формат файла модели.
type artifact struct {
	ModelType   string   `json:"model_type"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Classes     []int    `json:"classes"`
	Trees       []tree   `json:"trees"`
}

// Predictor — загруженная модель. После конструирования неизменяема
// и безопасна для конкурентного использования.
type Predictor struct {
	modelType   string
	version     string
	description string
	features    []string
	trees       []tree
	// hasProba — все листья несут распределения классов;
	// иначе предсказание голосованием с fallback-уверенностью
	hasProba bool
}

// New загружает и валидирует артефакт модели.
func New(path string) (*Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение артефакта модели: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("разбор артефакта модели: %w", err)
	}

	if err := validateArtifact(&art); err != nil {
		return nil, fmt.Errorf("артефакт модели %s: %w", path, err)
	}

	p := &Predictor{
		modelType:   art.ModelType,
		version:     art.Version,
		description: art.Description,
		features:    art.Features,
		trees:       art.Trees,
		hasProba:    true,
	}
	for _, t := range art.Trees {
		for _, n := range t.Nodes {
			if n.Left == -1 && len(n.Value) == 0 {
				p.hasProba = false
			}
		}
	}
	return p, nil
}

// validateArtifact проверяет структуру артефакта: признаки в каноническом
// порядке, непустой лес, корректные индексы узлов и оформленные листья.
func validateArtifact(art *artifact) error {
	if art.Version == "" {
		return errors.New("не задана версия модели")
	}
	if len(art.Features) != model.NumFeatures {
		return fmt.Errorf("ожидалось %d признаков, в артефакте %d", model.NumFeatures, len(art.Features))
	}
	for i, name := range art.Features {
		if name != model.FeatureNames[i] {
			return fmt.Errorf("признак %d: ожидалось %q, в артефакте %q", i, model.FeatureNames[i], name)
		}
	}
	if len(art.Trees) == 0 {
		return errors.New("лес не содержит деревьев")
	}
	for ti, t := range art.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("дерево %d пустое", ti)
		}
		for ni, n := range t.Nodes {
			if n.Left == -1 {
				// Лист: распределение из двух классов либо голый класс
				if len(n.Value) > 0 {
					if len(n.Value) != 2 {
						return fmt.Errorf("дерево %d, лист %d: распределение из %d классов, ожидалось 2", ti, ni, len(n.Value))
					}
					if n.Value[0]+n.Value[1] <= 0 {
						return fmt.Errorf("дерево %d, лист %d: пустое распределение классов", ti, ni)
					}
				} else if n.Class == nil || *n.Class < 0 || *n.Class > 1 {
					return fmt.Errorf("дерево %d, лист %d: нет ни распределения, ни класса", ti, ni)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= model.NumFeatures {
				return fmt.Errorf("дерево %d, узел %d: индекс признака %d вне диапазона", ti, ni, n.Feature)
			}
			if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
				return fmt.Errorf("дерево %d, узел %d: индексы потомков вне диапазона", ti, ni)
			}
		}
	}
	return nil
}

// Ready сообщает, готова ли модель к предсказаниям.
// Безопасно вызывать на nil-получателе.
func (p *Predictor) Ready() bool {
	return p != nil && len(p.trees) > 0
}

// Version возвращает версию модели из артефакта.
func (p *Predictor) Version() string {
	if p == nil {
		return ""
	}
	return p.version
}

// Info возвращает метаданные модели для GET /info.
func (p *Predictor) Info() model.ModelInfo {
	features := make([]string, len(p.features))
	copy(features, p.features)
	return model.ModelInfo{
		ModelType:   p.modelType,
		Version:     p.version,
		Features:    features,
		Description: p.description,
	}
}

// Predict вычисляет предсказание для вектора признаков.
// Детерминировано: одинаковый вектор всегда даёт одинаковый результат.
// ServedFromCache в результате всегда false — его выставляет кэш.
func (p *Predictor) Predict(v *model.FeatureVector) (*model.PredictionResult, error) {
	if !p.Ready() {
		return nil, errors.New("модель не загружена")
	}

	vals := v.Values()

	var probaSum [2]float64
	var votes [2]int
	for ti := range p.trees {
		leaf, err := p.walk(ti, vals)
		if err != nil {
			return nil, err
		}
		if len(leaf.Value) == 2 {
			total := leaf.Value[0] + leaf.Value[1]
			p0 := leaf.Value[0] / total
			p1 := leaf.Value[1] / total
			probaSum[0] += p0
			probaSum[1] += p1
			if p1 > p0 {
				votes[1]++
			} else {
				votes[0]++
			}
		} else if leaf.Class != nil {
			votes[*leaf.Class]++
		}
	}

	var prediction bool
	var confidence float64
	if p.hasProba {
		n := float64(len(p.trees))
		avg0 := probaSum[0] / n
		avg1 := probaSum[1] / n
		prediction = avg1 > avg0
		if prediction {
			confidence = avg1
		} else {
			confidence = avg0
		}
	} else {
		prediction = votes[1] > votes[0]
		confidence = fallbackConfidence
	}

	return &model.PredictionResult{
		Prediction:      prediction,
		Confidence:      confidence,
		RiskLevel:       model.DetermineRiskLevel(prediction, confidence),
		ServedFromCache: false,
	}, nil
}

// walk спускается по дереву ti до листа.
func (p *Predictor) walk(ti int, vals [model.NumFeatures]float64) (*treeNode, error) {
	nodes := p.trees[ti].Nodes
	idx := 0
	for steps := 0; steps <= len(nodes); steps++ {
		n := &nodes[idx]
		if n.Left == -1 {
			return n, nil
		}
		if vals[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return nil, fmt.Errorf("дерево %d: цикл при обходе", ti)
}
