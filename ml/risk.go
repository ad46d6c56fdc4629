package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// NumRiskFeatures is the fixed width of the classifier's input vector:
// gender, age, hypertension, heart disease, smoking history, BMI, HbA1c,
// blood glucose — in training order.
const NumRiskFeatures = 8

// TreeNode is one node of a decision tree stored as a flat array. Internal
// nodes route on Feature/Threshold; a node with Left < 0 is a leaf and Value
// holds its positive-class probability.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// RiskModel is a random-forest classifier with its feature scaler.
type RiskModel struct {
	Scaler StandardScaler `json:"scaler"`
	Trees  [][]TreeNode   `json:"trees"`
}

// LoadRiskModel decodes and validates the artifact. Call once at startup.
func LoadRiskModel(path string) (*RiskModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m RiskModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("risk model: %w", err)
	}
	if err := m.Scaler.validate(); err != nil {
		return nil, fmt.Errorf("risk model: %w", err)
	}
	if len(m.Scaler.Mean) != NumRiskFeatures {
		return nil, fmt.Errorf("risk model: scaler has %d features, want %d", len(m.Scaler.Mean), NumRiskFeatures)
	}
	if len(m.Trees) == 0 {
		return nil, fmt.Errorf("risk model: no trees")
	}
	for ti, tree := range m.Trees {
		if len(tree) == 0 {
			return nil, fmt.Errorf("risk model: tree %d is empty", ti)
		}
		for ni, n := range tree {
			if n.Left >= 0 && (n.Left >= len(tree) || n.Right < 0 || n.Right >= len(tree)) {
				return nil, fmt.Errorf("risk model: tree %d node %d has out-of-range children", ti, ni)
			}
			if n.Left >= 0 && (n.Feature < 0 || n.Feature >= NumRiskFeatures) {
				return nil, fmt.Errorf("risk model: tree %d node %d routes on unknown feature", ti, ni)
			}
		}
	}
	return &m, nil
}

// Predict scales the feature vector and majority-votes the forest, returning
// 1 for high risk and 0 for low.
func (m *RiskModel) Predict(features []float64) (int, error) {
	scaled, err := m.Scaler.Transform(features)
	if err != nil {
		return 0, err
	}

	positive := 0
	for _, tree := range m.Trees {
		if evalTree(tree, scaled) >= 0.5 {
			positive++
		}
	}
	if positive*2 > len(m.Trees) {
		return 1, nil
	}
	return 0, nil
}

func evalTree(tree []TreeNode, x []float64) float64 {
	i := 0
	for tree[i].Left >= 0 {
		if x[tree[i].Feature] <= tree[i].Threshold {
			i = tree[i].Left
		} else {
			i = tree[i].Right
		}
	}
	return tree[i].Value
}
