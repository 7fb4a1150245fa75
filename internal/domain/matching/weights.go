package matching

import (
	"fmt"
	"math"
)

// DefaultWeights is used when the caller supplies no weights, or only zeros.
func DefaultWeights() Weights {
	return Weights{Skill: 0.5, Experience: 0.3, Availability: 0.2}
}

// NormalizeWeights rescales the caller's weights to sum to 1.
//
// Absent components take their default value; negative or non-finite values are rejected.
// A zero sum falls back to DefaultWeights.
func NormalizeWeights(raw RawWeights) (Weights, error) {
	def := DefaultWeights()
	if raw.Skill == nil && raw.Experience == nil && raw.Availability == nil {
		return def, nil
	}

	w := Weights{
		Skill:        valueOr(raw.Skill, def.Skill),
		Experience:   valueOr(raw.Experience, def.Experience),
		Availability: valueOr(raw.Availability, def.Availability),
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"skill", w.Skill},
		{"experience", w.Experience},
		{"availability", w.Availability},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return Weights{}, fmt.Errorf("%w: %s weight is not a finite number", ErrInvalidInput, c.name)
		}
		if c.v < 0 {
			return Weights{}, fmt.Errorf("%w: %s weight must be >= 0, got %v", ErrInvalidInput, c.name, c.v)
		}
	}

	// Scaling by the largest component first keeps the sum finite for any finite input.
	peak := max(w.Skill, w.Experience, w.Availability)
	if peak <= 0 {
		return def, nil
	}
	w = Weights{
		Skill:        w.Skill / peak,
		Experience:   w.Experience / peak,
		Availability: w.Availability / peak,
	}
	sum := w.Sum()
	return Weights{
		Skill:        w.Skill / sum,
		Experience:   w.Experience / sum,
		Availability: w.Availability / sum,
	}, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
