package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name string
		raw  RawWeights
		want Weights
	}{
		{name: "absent uses default", raw: RawWeights{}, want: DefaultWeights()},
		{name: "all zero uses default", raw: RawWeights{Skill: f(0), Experience: f(0), Availability: f(0)}, want: DefaultWeights()},
		{name: "skill only", raw: RawWeights{Skill: f(1), Experience: f(0), Availability: f(0)}, want: Weights{Skill: 1}},
		{name: "rescaled", raw: RawWeights{Skill: f(2), Experience: f(1), Availability: f(1)}, want: Weights{Skill: 0.5, Experience: 0.25, Availability: 0.25}},
		{name: "partial input keeps defaults for absent", raw: RawWeights{Skill: f(1)}, want: Weights{Skill: 1 / 1.5, Experience: 0.3 / 1.5, Availability: 0.2 / 1.5}},
		{name: "slider percentages", raw: RawWeights{Skill: f(60), Experience: f(20), Availability: f(20)}, want: Weights{Skill: 0.6, Experience: 0.2, Availability: 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWeights(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Skill, got.Skill, 1e-12)
			assert.InDelta(t, tt.want.Experience, got.Experience, 1e-12)
			assert.InDelta(t, tt.want.Availability, got.Availability, 1e-12)
			assert.InDelta(t, 1.0, got.Sum(), 1e-9)
		})
	}
}

func TestNormalizeWeights_Rejects(t *testing.T) {
	for name, raw := range map[string]RawWeights{
		"negative skill":        {Skill: f(-0.1), Experience: f(1), Availability: f(1)},
		"negative availability": {Availability: f(-1)},
		"nan":                   {Experience: f(math.NaN())},
		"inf":                   {Skill: f(math.Inf(1))},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeWeights(raw)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNormalizeWeights_Idempotent(t *testing.T) {
	first, err := NormalizeWeights(RawWeights{Skill: f(3), Experience: f(7), Availability: f(11)})
	require.NoError(t, err)

	second, err := NormalizeWeights(RawWeights{Skill: &first.Skill, Experience: &first.Experience, Availability: &first.Availability})
	require.NoError(t, err)

	assert.InDelta(t, first.Skill, second.Skill, 1e-12)
	assert.InDelta(t, first.Experience, second.Experience, 1e-12)
	assert.InDelta(t, first.Availability, second.Availability, 1e-12)
}

func TestNormalizeWeights_HugeFiniteValues(t *testing.T) {
	half := math.MaxFloat64 / 2
	tests := []struct {
		name string
		raw  RawWeights
		want Weights
	}{
		{name: "equal halves of max float", raw: RawWeights{Skill: f(half), Experience: f(half), Availability: f(half)}, want: Weights{Skill: 1.0 / 3, Experience: 1.0 / 3, Availability: 1.0 / 3}},
		{name: "max float with zeros", raw: RawWeights{Skill: f(math.MaxFloat64), Experience: f(0), Availability: f(0)}, want: Weights{Skill: 1}},
		{name: "max float next to default", raw: RawWeights{Experience: f(math.MaxFloat64)}, want: Weights{Experience: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWeights(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, got.Sum(), 1e-9)
			assert.InDelta(t, tt.want.Skill, got.Skill, 1e-9)
			assert.InDelta(t, tt.want.Experience, got.Experience, 1e-9)
			assert.InDelta(t, tt.want.Availability, got.Availability, 1e-9)
		})
	}
}

func TestNormalizeWeights_TinyValues(t *testing.T) {
	got, err := NormalizeWeights(RawWeights{Skill: f(math.SmallestNonzeroFloat64), Experience: f(0), Availability: f(0)})
	require.NoError(t, err)
	assert.Equal(t, Weights{Skill: 1}, got)
}
