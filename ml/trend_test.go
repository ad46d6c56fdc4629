package ml

import (
	"math"
	"path/filepath"
	"testing"
)

// zeroTrendModel has all LSTM and dense weights at zero, so the hidden state
// stays zero and each forecast value is just the inverse-scaled dense bias.
// That makes the expected output computable by hand.
func zeroTrendModel(mean, std float64, denseBias []float64) *TrendModel {
	const h = 2
	vec := func() []float64 { return make([]float64, h) }
	mat := func() [][]float64 {
		m := make([][]float64, h)
		for i := range m {
			m[i] = make([]float64, h)
		}
		return m
	}
	denseW := make([][]float64, len(denseBias))
	for i := range denseW {
		denseW[i] = make([]float64, h)
	}
	return &TrendModel{
		Scaler: StandardScaler{Mean: []float64{mean}, Std: []float64{std}},
		Hidden: h,
		Wi:     vec(), Wf: vec(), Wc: vec(), Wo: vec(),
		Ui: mat(), Uf: mat(), Uc: mat(), Uo: mat(),
		Bi: vec(), Bf: vec(), Bc: vec(), Bo: vec(),
		DenseW: denseW,
		DenseB: denseBias,
	}
}

func TestForecastZeroWeightsMatchesBias(t *testing.T) {
	m := zeroTrendModel(140, 50, []float64{0.1, -0.2, 0, 0.5, 1})

	got, err := m.Forecast([]float64{120, 130, 140})
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	want := []float64{140 + 0.1*50, 140 - 0.2*50, 140, 140 + 0.5*50, 140 + 50}
	if len(got) != len(want) {
		t.Fatalf("got %d predictions, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("prediction[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForecastWrongWindow(t *testing.T) {
	m := zeroTrendModel(140, 50, []float64{0})
	for _, readings := range [][]float64{nil, {120}, {120, 130}, {120, 130, 140, 150}} {
		if _, err := m.Forecast(readings); err == nil {
			t.Errorf("Forecast accepted %d readings", len(readings))
		}
	}
}

func TestForecastDeterministic(t *testing.T) {
	m, err := LoadTrendModel(filepath.Join("..", "artifacts", "trend_model.json"))
	if err != nil {
		t.Fatalf("shipped artifact failed to load: %v", err)
	}

	readings := []float64{118, 126, 134}
	first, err := m.Forecast(readings)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(first) != m.Horizon() {
		t.Fatalf("got %d predictions, want %d", len(first), m.Horizon())
	}
	again, err := m.Forecast(readings)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("forecast changed between identical calls")
		}
	}
}

func TestTrendModelValidation(t *testing.T) {
	m := zeroTrendModel(140, 50, []float64{0, 0, 0, 0, 0})
	if err := m.validate(); err != nil {
		t.Fatalf("valid model rejected: %v", err)
	}

	m.Wi = []float64{0}
	if err := m.validate(); err == nil {
		t.Error("mismatched gate width accepted")
	}

	m = zeroTrendModel(140, 50, []float64{0})
	m.DenseW = [][]float64{{0}}
	if err := m.validate(); err == nil {
		t.Error("mismatched dense width accepted")
	}
}
