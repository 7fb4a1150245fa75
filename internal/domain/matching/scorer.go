package matching

import (
	"time"

	"github.com/google/uuid"
)

// Total combines the three sub-scores with normalized weights.
func Total(skillMatch, experience, availability float64, w Weights) float64 {
	return clampPercent(w.Skill*skillMatch + w.Experience*experience + w.Availability*availability)
}

// ScoreCandidate runs the three sub-scores for one candidate and assembles its record.
func ScoreCandidate(c CandidateInput, project Project, catalog map[uuid.UUID]Skill, w Weights, now time.Time) Candidate {
	sm := ScoreSkills(c.Skills, project.Requirements, catalog)
	exp := ScoreExperience(project, c.Skills, c.History, now)
	avail := ScoreAvailability(c.History)

	return Candidate{
		Employee: c.Employee,
		Scores: Scores{
			Total:        Total(sm.Percent, exp, avail, w),
			SkillMatch:   sm.Percent,
			Experience:   exp,
			Availability: avail,
		},
		MatchedSkills:      sm.Matched,
		MissingSkills:      sm.Missing,
		TotalProjects:      len(c.History),
		PastClientProjects: pastClientProjects(c.History, project),
	}
}

func pastClientProjects(history []Assignment, project Project) int {
	if project.ClientID == nil {
		return 0
	}
	n := 0
	for _, a := range history {
		if a.ClientID != nil && *a.ClientID == *project.ClientID {
			n++
		}
	}
	return n
}
