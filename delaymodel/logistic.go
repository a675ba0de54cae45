package delaymodel

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/orderdesk/delayrisk/traindata"
)

// LogisticTrainer fits an L2-regularized logistic regression on
// standardized features with L-BFGS, minimizing
//
//	0.5*|w|^2 + C * sum_i log(1 + exp(-y_i*(w.x_i + b)))
//
// over labels y in {-1,+1}. The intercept b is not regularized.
type LogisticTrainer struct {
	Config Config
}

// Name implements Trainer.
func (LogisticTrainer) Name() string { return "logistic regression" }

// Train implements Trainer. It fails on an empty dataset and on one where
// every label agrees, since a single class pins no decision boundary; the
// caller is expected to degrade to FallbackTrainer in that case.
func (t LogisticTrainer) Train(samples []traindata.Sample) (Model, error) {
	if len(samples) == 0 {
		return Model{}, errors.Errorf("no training samples")
	}

	rows := make([][]float64, len(samples))
	targets := make([]float64, len(samples))
	var positives int
	for i, s := range samples {
		rows[i] = s.Features()
		if s.Delayed == 1 {
			targets[i] = 1
			positives++
		} else {
			targets[i] = -1
		}
	}
	if positives == 0 || positives == len(samples) {
		return Model{}, errors.Errorf("training data has a single class (%d of %d delayed)", positives, len(samples))
	}

	scaler, err := FitScaler(rows)
	if err != nil {
		return Model{}, err
	}
	for i, row := range rows {
		rows[i] = scaler.Transform(row)
	}

	cfg := t.Config
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = DefaultConfig().MaxIter
	}
	if cfg.Tol <= 0 {
		cfg.Tol = DefaultConfig().Tol
	}
	if cfg.C <= 0 {
		cfg.C = DefaultConfig().C
	}

	// parameter vector is [w_0 .. w_n-1, b]
	nfeat := len(traindata.FeatureNames)
	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			w, b := params[:nfeat], params[nfeat]
			var loss float64
			for i, row := range rows {
				margin := targets[i] * (floats.Dot(w, row) + b)
				loss += logOnePlusExp(-margin)
			}
			return 0.5*floats.Dot(w, w) + cfg.C*loss
		},
		Grad: func(grad, params []float64) {
			w, b := params[:nfeat], params[nfeat]
			for j := range grad {
				grad[j] = 0
			}
			for i, row := range rows {
				margin := targets[i] * (floats.Dot(w, row) + b)
				g := -cfg.C * targets[i] * sigmoid(-margin)
				for j, x := range row {
					grad[j] += g * x
				}
				grad[nfeat] += g
			}
			for j := 0; j < nfeat; j++ {
				grad[j] += w[j]
			}
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: cfg.Tol,
		MajorIterations:   cfg.MaxIter,
	}
	result, err := optimize.Minimize(problem, make([]float64, nfeat+1), settings, &optimize.LBFGS{})
	if err != nil {
		return Model{}, errors.Wrapf(err, "logistic fit failed")
	}
	if result.Status == optimize.IterationLimit {
		log.Printf("logistic fit stopped at the %d iteration cap before converging", cfg.MaxIter)
	}

	return Model{
		Type:        ModelType,
		Features:    append([]string(nil), traindata.FeatureNames...),
		Coef:        append([]float64(nil), result.Location.X[:nfeat]...),
		Intercept:   result.Location.X[nfeat],
		ScalerMean:  scaler.Mean,
		ScalerScale: scaler.Scale,
	}, nil
}

// logOnePlusExp computes log(1+exp(v)) without overflowing for large v,
// where the result is v to within float precision.
func logOnePlusExp(v float64) float64 {
	if v > 35 {
		return v
	}
	return math.Log1p(math.Exp(v))
}
