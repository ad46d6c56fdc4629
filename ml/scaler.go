// Package ml holds the pre-trained inference artifacts: a tabular risk
// classifier and a time-series trend predictor. Artifacts are decoded from
// JSON once at process start and are read-only afterwards; each request is a
// single forward pass with no shared mutable state.
package ml

import "fmt"

// StandardScaler normalizes features to zero mean and unit variance using
// parameters exported from the training pipeline.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return fmt.Errorf("scaler: mean and std must be non-empty and the same length")
	}
	for i, sd := range s.Std {
		if sd == 0 {
			return fmt.Errorf("scaler: std[%d] is zero", i)
		}
	}
	return nil
}

// Transform scales a feature vector in training order. The vector length must
// match the scaler's dimensionality.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler: expected %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Std[i]
	}
	return out, nil
}

// TransformOne scales a single value with a one-dimensional scaler.
func (s *StandardScaler) TransformOne(v float64) float64 {
	return (v - s.Mean[0]) / s.Std[0]
}

// InverseOne undoes TransformOne.
func (s *StandardScaler) InverseOne(v float64) float64 {
	return v*s.Std[0] + s.Mean[0]
}
