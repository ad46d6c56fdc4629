package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// TrendWindow is how many recent glucose readings the predictor consumes.
const TrendWindow = 3

// TrendModel is a single-layer LSTM over a scalar glucose series followed by
// a dense layer producing the multi-day forecast. Weight naming follows the
// usual gate order: input (i), forget (f), cell candidate (c), output (o).
// W* are input weights (input dimension 1), U* the recurrent weights, B* the
// biases; Dense maps the final hidden state to the forecast horizon.
type TrendModel struct {
	Scaler StandardScaler `json:"scaler"`
	Hidden int            `json:"hidden_size"`

	Wi []float64 `json:"w_i"`
	Wf []float64 `json:"w_f"`
	Wc []float64 `json:"w_c"`
	Wo []float64 `json:"w_o"`

	Ui [][]float64 `json:"u_i"`
	Uf [][]float64 `json:"u_f"`
	Uc [][]float64 `json:"u_c"`
	Uo [][]float64 `json:"u_o"`

	Bi []float64 `json:"b_i"`
	Bf []float64 `json:"b_f"`
	Bc []float64 `json:"b_c"`
	Bo []float64 `json:"b_o"`

	DenseW [][]float64 `json:"dense_w"`
	DenseB []float64   `json:"dense_b"`
}

// LoadTrendModel decodes and validates the artifact. Call once at startup.
func LoadTrendModel(path string) (*TrendModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m TrendModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("trend model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("trend model: %w", err)
	}
	return &m, nil
}

func (m *TrendModel) validate() error {
	if err := m.Scaler.validate(); err != nil {
		return err
	}
	if len(m.Scaler.Mean) != 1 {
		return fmt.Errorf("scaler must be one-dimensional, got %d", len(m.Scaler.Mean))
	}
	h := m.Hidden
	if h <= 0 {
		return fmt.Errorf("hidden_size must be positive")
	}
	for name, w := range map[string][]float64{
		"w_i": m.Wi, "w_f": m.Wf, "w_c": m.Wc, "w_o": m.Wo,
		"b_i": m.Bi, "b_f": m.Bf, "b_c": m.Bc, "b_o": m.Bo,
	} {
		if len(w) != h {
			return fmt.Errorf("%s has length %d, want %d", name, len(w), h)
		}
	}
	for name, u := range map[string][][]float64{
		"u_i": m.Ui, "u_f": m.Uf, "u_c": m.Uc, "u_o": m.Uo,
	} {
		if len(u) != h {
			return fmt.Errorf("%s has %d rows, want %d", name, len(u), h)
		}
		for i, row := range u {
			if len(row) != h {
				return fmt.Errorf("%s row %d has length %d, want %d", name, i, len(row), h)
			}
		}
	}
	if len(m.DenseB) == 0 {
		return fmt.Errorf("dense layer has no outputs")
	}
	if len(m.DenseW) != len(m.DenseB) {
		return fmt.Errorf("dense_w has %d rows, dense_b has %d", len(m.DenseW), len(m.DenseB))
	}
	for i, row := range m.DenseW {
		if len(row) != h {
			return fmt.Errorf("dense_w row %d has length %d, want %d", i, len(row), h)
		}
	}
	return nil
}

// Horizon is how many future values one forecast produces.
func (m *TrendModel) Horizon() int { return len(m.DenseB) }

// Forecast scales the readings, runs them through the recurrent cell in
// order, projects the final hidden state through the dense layer and
// inverse-scales the result back to glucose units.
func (m *TrendModel) Forecast(readings []float64) ([]float64, error) {
	if len(readings) != TrendWindow {
		return nil, fmt.Errorf("expected %d readings, got %d", TrendWindow, len(readings))
	}

	h := make([]float64, m.Hidden)
	cell := make([]float64, m.Hidden)

	for _, reading := range readings {
		x := m.Scaler.TransformOne(reading)
		hNext := make([]float64, m.Hidden)
		for j := 0; j < m.Hidden; j++ {
			i := sigmoid(m.Wi[j]*x + dot(m.Ui[j], h) + m.Bi[j])
			f := sigmoid(m.Wf[j]*x + dot(m.Uf[j], h) + m.Bf[j])
			g := math.Tanh(m.Wc[j]*x + dot(m.Uc[j], h) + m.Bc[j])
			o := sigmoid(m.Wo[j]*x + dot(m.Uo[j], h) + m.Bo[j])
			cell[j] = f*cell[j] + i*g
			hNext[j] = o * math.Tanh(cell[j])
		}
		h = hNext
	}

	out := make([]float64, m.Horizon())
	for j := range out {
		out[j] = m.Scaler.InverseOne(m.DenseB[j] + dot(m.DenseW[j], h))
	}
	return out, nil
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
