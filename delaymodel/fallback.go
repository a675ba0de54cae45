package delaymodel

import "github.com/orderdesk/delayrisk/traindata"

// Rule-based weights in traindata.FeatureNames order, hand-tuned so that
// long jobs, busy staff and large orders raise the delay risk while more
// assignment candidates lower it.
var fallbackCoef = []float64{0.015, 0.3, 0.4, 0.2, 0.25, 0.1, -0.5, 0.0}

const fallbackIntercept = -2.0

// FallbackTrainer emits the fixed rule-based weights with an identity
// scaler. It is the degraded strategy for when fitting is unavailable or
// fails, so it never errors.
type FallbackTrainer struct{}

// Name implements Trainer.
func (FallbackTrainer) Name() string { return "rule-based weights" }

// Train implements Trainer. The samples are not consulted.
func (FallbackTrainer) Train(samples []traindata.Sample) (Model, error) {
	n := len(traindata.FeatureNames)
	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	return Model{
		Type:        ModelType,
		Features:    append([]string(nil), traindata.FeatureNames...),
		Coef:        append([]float64(nil), fallbackCoef...),
		Intercept:   fallbackIntercept,
		ScalerMean:  mean,
		ScalerScale: scale,
	}, nil
}
