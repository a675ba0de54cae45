package delaymodel

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Scaler standardizes feature columns: subtract the column mean, divide by
// the column standard deviation.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per-column standardization statistics over rows, all of
// which must share the width of the first. A constant column keeps scale 1
// so it standardizes to zero instead of dividing by zero.
func FitScaler(rows [][]float64) (Scaler, error) {
	if len(rows) == 0 {
		return Scaler{}, errors.Errorf("no rows to fit a scaler on")
	}
	width := len(rows[0])
	sc := Scaler{
		Mean:  make([]float64, width),
		Scale: make([]float64, width),
	}

	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		mean, err := stats.Mean(col)
		if err != nil {
			return Scaler{}, errors.Wrapf(err, "error computing mean of column %d", j)
		}
		// population standard deviation, matching how the production
		// scaler statistics were computed
		sd, err := stats.StandardDeviation(col)
		if err != nil {
			return Scaler{}, errors.Wrapf(err, "error computing deviation of column %d", j)
		}
		if sd == 0 {
			sd = 1
		}
		sc.Mean[j] = mean
		sc.Scale[j] = sd
	}
	return sc, nil
}

// Transform returns a standardized copy of features.
func (s Scaler) Transform(features []float64) []float64 {
	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = (x - s.Mean[i]) / s.Scale[i]
	}
	return out
}
