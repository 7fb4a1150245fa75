package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAvailability(t *testing.T) {
	active := func(alloc float64) Assignment { return Assignment{Status: StatusInProgress, Allocation: alloc} }

	tests := []struct {
		name    string
		history []Assignment
		want    float64
	}{
		{name: "no assignments", want: 100},
		{name: "only completed", history: []Assignment{{Status: StatusCompleted}}, want: 100},
		{name: "one active", history: []Assignment{active(0)}, want: 50},
		{name: "planning counts as active", history: []Assignment{{Status: StatusPlanning}}, want: 50},
		{name: "two active", history: []Assignment{active(0), active(0)}, want: 20},
		{name: "three active", history: []Assignment{active(1), active(1), active(1)}, want: 0},
		{name: "overloaded", history: []Assignment{active(1), active(1), active(1), active(1)}, want: 0},
		{name: "half time", history: []Assignment{active(0.5)}, want: 75},
		{name: "one and a half", history: []Assignment{active(1), active(0.5)}, want: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreAvailability(tt.history), 1e-9)
		})
	}
}

func TestAvailabilityForLoad_Decreasing(t *testing.T) {
	prev := 101.0
	for load := 0.0; load <= 4; load += 0.1 {
		got := availabilityForLoad(load)
		assert.LessOrEqual(t, got, prev, "load=%v", load)
		assert.GreaterOrEqual(t, got, 0.0)
		prev = got
	}
}
