package delaymodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitScaler(t *testing.T) {
	rows := [][]float64{
		{1, 10},
		{2, 10},
		{3, 10},
		{4, 10},
	}
	sc, err := FitScaler(rows)
	require.NoError(t, err)

	assert.Equal(t, 2.5, sc.Mean[0])
	if math.Abs(sc.Scale[0]-math.Sqrt(1.25)) > 1e-9 {
		t.Errorf("expected population deviation %v, got %v", math.Sqrt(1.25), sc.Scale[0])
	}

	// constant column: mean passes through, scale stays 1
	assert.Equal(t, 10.0, sc.Mean[1])
	assert.Equal(t, 1.0, sc.Scale[1])
}

func TestScalerTransform(t *testing.T) {
	sc := Scaler{Mean: []float64{2.5, 10}, Scale: []float64{0.5, 1}}
	assert.Equal(t, []float64{0, 0}, sc.Transform([]float64{2.5, 10}))
	assert.Equal(t, []float64{3, -1}, sc.Transform([]float64{4, 9}))
}

func TestFitScalerEmpty(t *testing.T) {
	_, err := FitScaler(nil)
	assert.Error(t, err)
}

func TestFitScalerStandardizes(t *testing.T) {
	rows := [][]float64{
		{1, 5, 3},
		{4, 5, 0},
		{7, 5, 9},
		{2, 5, 2},
		{6, 5, 6},
	}
	sc, err := FitScaler(rows)
	require.NoError(t, err)

	n := float64(len(rows))
	for j := 0; j < 3; j++ {
		var sum, sumSq float64
		for _, row := range rows {
			z := sc.Transform(row)[j]
			sum += z
			sumSq += z * z
		}
		assert.InDelta(t, 0, sum/n, 1e-9, "column %d mean", j)
		if j == 1 {
			// constant column stays at zero
			assert.InDelta(t, 0, sumSq/n, 1e-9)
			continue
		}
		assert.InDelta(t, 1, sumSq/n, 1e-9, "column %d variance", j)
	}
}
