package delaymodel

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"os"

	"github.com/pkg/errors"
)

// ModelType tags the only scorer this package produces. Consumers check the
// tag before applying the weights.
const ModelType = "logistic_regression"

// Model is a trained delay predictor: a logistic regression over
// standardized features. Any consumer can reproduce a score as
// sigmoid(intercept + sum_i coef[i] * (x[i]-mean[i])/scale[i]) without
// knowing how the weights were produced.
type Model struct {
	Type        string    `json:"type"`
	Features    []string  `json:"features"`
	Coef        []float64 `json:"coef"`
	Intercept   float64   `json:"intercept"`
	ScalerMean  []float64 `json:"scaler_mean"`
	ScalerScale []float64 `json:"scaler_scale"`
}

// Validate checks the artifact shape: the type tag plus one coefficient and
// one scaler entry per feature.
func (m Model) Validate() error {
	if m.Type != ModelType {
		return errors.Errorf("unknown model type %q", m.Type)
	}
	if len(m.Features) == 0 {
		return errors.Errorf("model has no features")
	}
	if len(m.Coef) != len(m.Features) {
		return errors.Errorf("model has %d coefficients for %d features", len(m.Coef), len(m.Features))
	}
	if len(m.ScalerMean) != len(m.Features) || len(m.ScalerScale) != len(m.Features) {
		return errors.Errorf("scaler vectors do not match %d features", len(m.Features))
	}
	return nil
}

// PredictProba returns the probability that an order with the given raw
// feature vector, in Features order, is delayed.
func (m Model) PredictProba(features []float64) float64 {
	z := m.Intercept
	for i, c := range m.Coef {
		z += c * (features[i] - m.ScalerMean[i]) / m.ScalerScale[i]
	}
	return sigmoid(z)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Save writes the model as indented JSON, replacing any previous artifact at
// path.
func (m Model) Save(path string) error {
	buf, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, os.ModePerm)
}

// Load reads and validates a model artifact written by Save.
func Load(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return Model{}, err
	}
	defer f.Close()

	var m Model
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Model{}, errors.Wrapf(err, "error decoding model %s", path)
	}
	if err := m.Validate(); err != nil {
		return Model{}, errors.Wrapf(err, "invalid model %s", path)
	}
	return m, nil
}
