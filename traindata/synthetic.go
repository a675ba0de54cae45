package traindata

import "math/rand"

// syntheticQuantities is the order-size menu the generator draws from
// uniformly.
var syntheticQuantities = []int{5, 10, 15, 20, 25, 30, 50, 75, 100, 150, 200}

// GenerateSynthetic produces n samples from a seeded generator. Processing
// time grows linearly with quantity plus jitter, the remaining fields are
// drawn independently, and the delay label comes from the rule chain in
// syntheticLabel.
func GenerateSynthetic(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		quantity := syntheticQuantities[rng.Intn(len(syntheticQuantities))]
		s := Sample{
			Quantity:      quantity,
			Priority:      rng.Intn(4),
			TimeHours:     round2(0.1*float64(quantity) + 0.5 + rng.Float64()*0.5),
			HasDeadline:   rng.Intn(2),
			StaffWorkload: round1(rng.Float64() * maxStaffLoad),
			NumTasks:      fixedNumTasks,
			NumCandidates: 1 + rng.Intn(3),
			Channel:       rng.Intn(2),
		}
		s.Delayed = syntheticLabel(s, rng)
		samples = append(samples, s)
	}
	return samples
}

// syntheticLabel applies the delay rules in order, first match wins. The
// residual draw in the last case only consumes randomness when no rule
// fired, so reordering the cases changes the generated distribution.
func syntheticLabel(s Sample, rng *rand.Rand) int {
	switch {
	case s.HasDeadline == 1 && s.TimeHours > maxStaffLoad-s.StaffWorkload:
		// the job takes longer than the staff capacity left before
		// the deadline
		return 1
	case s.Quantity >= 100 && s.NumCandidates <= 1:
		return 1
	case s.StaffWorkload >= 6 && s.TimeHours >= 4:
		return 1
	case s.Quantity >= 150:
		return 1
	case s.Priority == 3 && s.TimeHours >= 6:
		return 1
	case rng.Float64() < 0.15:
		// unexplained residual delays
		return 1
	}
	return 0
}
