package delaymodel

import (
	"github.com/orderdesk/delayrisk/traindata"
)

// Config controls a training run.
type Config struct {
	// MaxIter caps the optimizer's major iterations.
	MaxIter int
	// Tol is the gradient norm under which the fit counts as converged.
	Tol float64
	// C is the inverse regularization strength.
	C float64
	// Seed drives synthetic dataset regeneration tied to the run.
	Seed int64
	// Fallback skips fitting entirely and emits the rule-based weights.
	Fallback bool
}

// DefaultConfig mirrors the settings the production model was fit with.
func DefaultConfig() Config {
	return Config{
		MaxIter: 500,
		Tol:     1e-4,
		C:       1,
		Seed:    traindata.DefaultSeed,
	}
}

// Trainer produces a delay model from training samples.
type Trainer interface {
	Train(samples []traindata.Sample) (Model, error)
	Name() string
}

// Select resolves the training strategy once at startup: the fitted
// logistic regression unless the config forces the rule-based fallback.
func Select(cfg Config) Trainer {
	if cfg.Fallback {
		return FallbackTrainer{}
	}
	return LogisticTrainer{Config: cfg}
}
