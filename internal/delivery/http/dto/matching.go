package dto

import "talent-match/internal/domain/matching"

// MatchingRequest carries the raw importance weights. Absent weights take their
// defaults; range checks happen in the engine so that all weight errors share
// one response.
type MatchingRequest struct {
	SkillWeight        *float64 `json:"skill_weight"`
	ExperienceWeight   *float64 `json:"experience_weight"`
	AvailabilityWeight *float64 `json:"availability_weight"`
}

func (r MatchingRequest) RawWeights() matching.RawWeights {
	return matching.RawWeights{
		Skill:        r.SkillWeight,
		Experience:   r.ExperienceWeight,
		Availability: r.AvailabilityWeight,
	}
}

type RecommendationQuery struct {
	Limit      int      `query:"limit" validate:"gte=0,lte=50"`
	MinScore   *float64 `query:"min_score" validate:"omitempty,gte=0,lte=100"`
	Department string   `query:"department" validate:"max=255"`

	SkillWeight        *float64 `query:"skill_weight"`
	ExperienceWeight   *float64 `query:"experience_weight"`
	AvailabilityWeight *float64 `query:"availability_weight"`
}

func (q RecommendationQuery) RawWeights() matching.RawWeights {
	return matching.RawWeights{
		Skill:        q.SkillWeight,
		Experience:   q.ExperienceWeight,
		Availability: q.AvailabilityWeight,
	}
}
