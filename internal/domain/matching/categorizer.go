package matching

import (
	"bytes"
	"sort"
)

const (
	ExcellentThreshold = 70.0
	GoodThreshold      = 50.0
	FairThreshold      = 30.0
)

func TierFor(total float64) Tier {
	switch {
	case total >= ExcellentThreshold:
		return TierExcellent
	case total >= GoodThreshold:
		return TierGood
	case total >= FairThreshold:
		return TierFair
	default:
		return TierPoor
	}
}

// Categorize partitions scored candidates into tiers. The input slice is left untouched.
func Categorize(project ProjectSummary, candidates []Candidate, w Weights) Result {
	out := Result{
		Project: project,
		Categorized: Categorized{
			Excellent: make([]Candidate, 0),
			Good:      make([]Candidate, 0),
			Fair:      make([]Candidate, 0),
			Poor:      make([]Candidate, 0),
		},
		WeightsUsed: w,
	}

	for _, c := range Rank(candidates) {
		switch TierFor(c.Scores.Total) {
		case TierExcellent:
			out.Categorized.Excellent = append(out.Categorized.Excellent, c)
		case TierGood:
			out.Categorized.Good = append(out.Categorized.Good, c)
		case TierFair:
			out.Categorized.Fair = append(out.Categorized.Fair, c)
		default:
			out.Categorized.Poor = append(out.Categorized.Poor, c)
		}
	}

	out.Summary = Summary{
		TotalCandidates:  len(candidates),
		ExcellentMatches: len(out.Categorized.Excellent),
		GoodMatches:      len(out.Categorized.Good),
		FairMatches:      len(out.Categorized.Fair),
		PoorMatches:      len(out.Categorized.Poor),
	}
	return out
}

// Rank returns a copy ordered by total score descending, ties by employee id ascending.
func Rank(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Scores.Total != out[j].Scores.Total {
			return out[i].Scores.Total > out[j].Scores.Total
		}
		return bytes.Compare(out[i].Employee.ID[:], out[j].Employee.ID[:]) < 0
	})
	return out
}
