package ml

import (
	"os"
	"path/filepath"
	"testing"
)

func identityScaler(n int) StandardScaler {
	mean := make([]float64, n)
	std := make([]float64, n)
	for i := range std {
		std[i] = 1
	}
	return StandardScaler{Mean: mean, Std: std}
}

// glucoseStump votes high risk when blood glucose (feature 7) exceeds the
// threshold.
func glucoseStump(threshold float64) []TreeNode {
	return []TreeNode{
		{Feature: 7, Threshold: threshold, Left: 1, Right: 2},
		{Feature: -1, Left: -1, Right: -1, Value: 0.1},
		{Feature: -1, Left: -1, Right: -1, Value: 0.9},
	}
}

func TestRiskPredictMajorityVote(t *testing.T) {
	m := &RiskModel{
		Scaler: identityScaler(NumRiskFeatures),
		Trees:  [][]TreeNode{glucoseStump(140), glucoseStump(140), glucoseStump(140)},
	}

	features := []float64{1, 50, 0, 0, 1, 27, 6.1, 180}
	got, err := m.Predict(features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != 1 {
		t.Errorf("high glucose predicted %d, want 1", got)
	}

	features[7] = 110
	got, err = m.Predict(features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != 0 {
		t.Errorf("normal glucose predicted %d, want 0", got)
	}
}

func TestRiskPredictDeterministic(t *testing.T) {
	m := &RiskModel{
		Scaler: identityScaler(NumRiskFeatures),
		Trees:  [][]TreeNode{glucoseStump(140), glucoseStump(120)},
	}
	features := []float64{0, 33, 1, 0, 2, 31.2, 5.4, 130}

	first, err := m.Predict(features)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := m.Predict(features)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if again != first {
			t.Fatalf("prediction changed between identical calls: %d then %d", first, again)
		}
	}
}

func TestRiskPredictWrongVectorLength(t *testing.T) {
	m := &RiskModel{
		Scaler: identityScaler(NumRiskFeatures),
		Trees:  [][]TreeNode{glucoseStump(140)},
	}
	if _, err := m.Predict([]float64{1, 2, 3}); err == nil {
		t.Error("short feature vector accepted")
	}
}

func TestLoadRiskModelRejectsBadArtifacts(t *testing.T) {
	cases := map[string]string{
		"not json":     `{{`,
		"no trees":     `{"scaler":{"mean":[0,0,0,0,0,0,0,0],"std":[1,1,1,1,1,1,1,1]},"trees":[]}`,
		"zero std":     `{"scaler":{"mean":[0,0,0,0,0,0,0,0],"std":[1,1,1,0,1,1,1,1]},"trees":[[{"feature":-1,"left":-1,"right":-1,"value":0.5}]]}`,
		"wrong width":  `{"scaler":{"mean":[0,0],"std":[1,1]},"trees":[[{"feature":-1,"left":-1,"right":-1,"value":0.5}]]}`,
		"bad children": `{"scaler":{"mean":[0,0,0,0,0,0,0,0],"std":[1,1,1,1,1,1,1,1]},"trees":[[{"feature":0,"threshold":1,"left":5,"right":6,"value":0}]]}`,
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "model.json")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := LoadRiskModel(path); err == nil {
			t.Errorf("%s: artifact accepted", name)
		}
	}
}

func TestLoadRiskModelMissingFile(t *testing.T) {
	if _, err := LoadRiskModel(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing artifact accepted")
	}
}

func TestShippedRiskArtifactLoads(t *testing.T) {
	m, err := LoadRiskModel(filepath.Join("..", "artifacts", "risk_model.json"))
	if err != nil {
		t.Fatalf("shipped artifact failed to load: %v", err)
	}
	if _, err := m.Predict([]float64{1, 60, 1, 0, 3, 32, 7.5, 210}); err != nil {
		t.Errorf("Predict on shipped artifact: %v", err)
	}
}
