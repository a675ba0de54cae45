// Package traindata builds the order delay training set: samples derived
// from the Olist e-commerce export, topped up by a synthetic generator when
// real data runs short.
package traindata

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
)

const (
	// DefaultSeed seeds every generation routine so repeated runs on the
	// same input produce identical datasets.
	DefaultSeed int64 = 42

	// MaxRealSamples caps how many orders the Olist transform emits.
	MaxRealSamples = 2000

	// MinRealSamples is the smallest usable real dataset; below it the
	// build job tops the dataset up with synthetic samples.
	MinRealSamples = 100

	// MinTrainingSamples is the smallest dataset the trainer accepts;
	// anything smaller is discarded and regenerated synthetically.
	MinTrainingSamples = 1000
)

// Feature bounds shared by the Olist transform and the synthetic generator.
const (
	maxQuantity    = 200
	minWindowHours = 0.5
	maxWindowHours = 200.0
	maxStaffLoad   = 8.0
	fixedNumTasks  = 3
)

// FeatureNames lists the model features in the canonical column order used
// by Sample.Features, the scaler vectors and the trained coefficients.
var FeatureNames = []string{
	"quantity",
	"priority",
	"time_hours",
	"has_deadline",
	"staff_workload",
	"num_tasks",
	"num_candidates",
	"channel",
}

// Sample is one training example: the feature fields in FeatureNames order
// plus the delayed label.
type Sample struct {
	Quantity      int     `json:"quantity"`
	Priority      int     `json:"priority"`
	TimeHours     float64 `json:"time_hours"`
	HasDeadline   int     `json:"has_deadline"`
	StaffWorkload float64 `json:"staff_workload"`
	NumTasks      int     `json:"num_tasks"`
	NumCandidates int     `json:"num_candidates"`
	Channel       int     `json:"channel"`
	Delayed       int     `json:"delayed"`
}

// Features returns the feature vector for s, in FeatureNames order.
func (s Sample) Features() []float64 {
	return []float64{
		float64(s.Quantity),
		float64(s.Priority),
		s.TimeHours,
		float64(s.HasDeadline),
		s.StaffWorkload,
		float64(s.NumTasks),
		float64(s.NumCandidates),
		float64(s.Channel),
	}
}

// Load reads a dataset written by Save.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []Sample
	if err := json.NewDecoder(f).Decode(&samples); err != nil {
		return nil, errors.Wrapf(err, "error decoding dataset %s", path)
	}
	return samples, nil
}

// Save writes the dataset as an indented JSON array, replacing any previous
// file at path.
func Save(path string, samples []Sample) error {
	// MarshalIndent so the artifact stays reviewable by hand
	buf, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, os.ModePerm)
}

// LoadOrGenerate returns the dataset at path when it holds at least
// minSamples records. A smaller dataset is discarded and path is overwritten
// with genSamples fresh synthetic records; a missing file is created the
// same way.
func LoadOrGenerate(path string, minSamples, genSamples int, seed int64) ([]Sample, error) {
	samples, err := Load(path)
	switch {
	case os.IsNotExist(errors.Cause(err)):
		log.Printf("no dataset at %s, generating %d synthetic samples", path, genSamples)
	case err != nil:
		return nil, err
	case len(samples) < minSamples:
		log.Printf("dataset %s has %d rows (< %d), regenerating synthetically", path, len(samples), minSamples)
	default:
		return samples, nil
	}

	samples = GenerateSynthetic(genSamples, seed)
	if err := Save(path, samples); err != nil {
		return nil, errors.Wrapf(err, "error writing regenerated dataset")
	}
	return samples, nil
}

// AugmentIfSparse appends synthetic samples up to total records when fewer
// than min real ones survived the transform. Feature distributions of the
// synthetic rows differ from real ones, which is accepted for sparse inputs.
func AugmentIfSparse(samples []Sample, min, total int, seed int64) []Sample {
	if len(samples) >= min || len(samples) >= total {
		return samples
	}
	return append(samples, GenerateSynthetic(total-len(samples), seed)...)
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round1(x float64) float64 { return math.Round(x*10) / 10 }
