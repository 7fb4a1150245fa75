package matching

// availabilityCurve maps effective load (sum of active allocations) to availability.
// Integer loads reproduce the classic 0/1/2/3+ projects table; fractional loads interpolate.
var availabilityCurve = []struct {
	load  float64
	score float64
}{
	{0, 100},
	{1, 50},
	{2, 20},
	{3, 0},
}

// ScoreAvailability returns 100 for an employee with no active assignment and decreases
// monotonically with load.
func ScoreAvailability(history []Assignment) float64 {
	return availabilityForLoad(activeLoad(history))
}

func activeLoad(history []Assignment) float64 {
	var load float64
	for _, a := range history {
		if !a.Active() {
			continue
		}
		if a.Allocation <= 0 {
			load += 1
			continue
		}
		load += a.Allocation
	}
	return load
}

func availabilityForLoad(load float64) float64 {
	if load <= 0 {
		return availabilityCurve[0].score
	}
	for i := 1; i < len(availabilityCurve); i++ {
		lo, hi := availabilityCurve[i-1], availabilityCurve[i]
		if load <= hi.load {
			t := (load - lo.load) / (hi.load - lo.load)
			return lo.score + t*(hi.score-lo.score)
		}
	}
	return availabilityCurve[len(availabilityCurve)-1].score
}
