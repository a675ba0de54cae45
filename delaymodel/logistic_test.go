package delaymodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/delayrisk/traindata"
)

// separable builds a two-class dataset split purely by job length, with a
// wide margin between the classes.
func separable() []traindata.Sample {
	var samples []traindata.Sample
	for rep := 0; rep < 12; rep++ {
		for _, hours := range []float64{1, 1.5, 2, 2.5, 3} {
			samples = append(samples, traindata.Sample{
				Quantity:      10,
				TimeHours:     hours,
				HasDeadline:   1,
				StaffWorkload: 2,
				NumTasks:      3,
				NumCandidates: 2,
				Delayed:       0,
			})
		}
		for _, hours := range []float64{6, 6.5, 7, 7.5, 8} {
			samples = append(samples, traindata.Sample{
				Quantity:      10,
				TimeHours:     hours,
				HasDeadline:   1,
				StaffWorkload: 2,
				NumTasks:      3,
				NumCandidates: 2,
				Delayed:       1,
			})
		}
	}
	return samples
}

func accuracy(m Model, samples []traindata.Sample) float64 {
	var correct int
	for _, s := range samples {
		pred := 0
		if m.PredictProba(s.Features()) > 0.5 {
			pred = 1
		}
		if pred == s.Delayed {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

func TestLogisticTrainerSeparable(t *testing.T) {
	samples := separable()
	model, err := LogisticTrainer{Config: DefaultConfig()}.Train(samples)
	require.NoError(t, err)
	require.NoError(t, model.Validate())

	assert.True(t, accuracy(model, samples) > 0.99, "classes separate with a wide margin")

	// job length carries all the signal
	assert.True(t, model.Coef[2] > 0.1, "time_hours coefficient %v", model.Coef[2])

	// the other features are constant, standardize to zero, and
	// regularization pins their coefficients there
	for _, j := range []int{0, 5, 7} {
		assert.InDelta(t, 0, model.Coef[j], 1e-3, "feature %s", model.Features[j])
	}
}

func TestLogisticTrainerEmbedsScaler(t *testing.T) {
	model, err := LogisticTrainer{Config: DefaultConfig()}.Train(separable())
	require.NoError(t, err)

	assert.Equal(t, traindata.FeatureNames, model.Features)
	// num_tasks is constant 3 across the dataset
	assert.Equal(t, 3.0, model.ScalerMean[5])
	assert.Equal(t, 1.0, model.ScalerScale[5])
	// mean job length sits between the two class clusters
	assert.InDelta(t, 4.5, model.ScalerMean[2], 1e-9)
}

func TestLogisticTrainerDeterministic(t *testing.T) {
	a, err := LogisticTrainer{Config: DefaultConfig()}.Train(separable())
	require.NoError(t, err)
	b, err := LogisticTrainer{Config: DefaultConfig()}.Train(separable())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLogisticTrainerSingleClass(t *testing.T) {
	samples := separable()
	for i := range samples {
		samples[i].Delayed = 0
	}
	_, err := LogisticTrainer{Config: DefaultConfig()}.Train(samples)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "single class"), "got %v", err)
}

func TestLogisticTrainerEmpty(t *testing.T) {
	_, err := LogisticTrainer{Config: DefaultConfig()}.Train(nil)
	assert.Error(t, err)
}

func TestLogisticTrainerOnSynthetic(t *testing.T) {
	samples := traindata.GenerateSynthetic(600, traindata.DefaultSeed)
	model, err := LogisticTrainer{Config: DefaultConfig()}.Train(samples)
	require.NoError(t, err)
	require.NoError(t, model.Validate())

	// the labels are mostly rule driven, so the fit should beat a coin
	// flip comfortably
	acc := accuracy(model, samples)
	assert.True(t, acc > 0.55, "training accuracy %v", acc)
}

func TestLogisticTrainerIterationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIter = 1
	model, err := LogisticTrainer{Config: cfg}.Train(separable())
	require.NoError(t, err)
	assert.NoError(t, model.Validate())
}
