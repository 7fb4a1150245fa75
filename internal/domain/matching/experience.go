package matching

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	historyCap        = 50.0
	historyPerProject = 20.0
	clientBonus       = 10.0
	depthCap          = 40.0

	yearsSaturation = 5.0
	staleFactor     = 0.5
	recentWindow    = 365 * 24 * time.Hour
)

// ScoreExperience returns an experience percentage in [0,100].
//
// It adds three parts: relevant history (past assignments whose skills overlap the
// requirements, scaled by overlap and recency, capped at 50), prior work for the same
// client (10), and depth (importance-weighted years in the required skills, saturating
// at 5 years, capped at 40). Every part only grows with more history or more years.
func ScoreExperience(project Project, skills []EmployeeSkill, history []Assignment, now time.Time) float64 {
	required := make(map[uuid.UUID]struct{}, len(project.Requirements))
	for _, r := range project.Requirements {
		required[r.SkillID] = struct{}{}
	}

	var historyPoints float64
	sameClient := false
	for _, a := range history {
		if a.ProjectID == project.ID {
			continue
		}
		if project.ClientID != nil && a.ClientID != nil && *a.ClientID == *project.ClientID {
			sameClient = true
		}
		rel := relevance(a.SkillIDs, required)
		if rel <= 0 {
			continue
		}
		historyPoints += historyPerProject * rel * recency(a, now)
	}
	historyPoints = math.Min(historyPoints, historyCap)

	var clientPoints float64
	if sameClient {
		clientPoints = clientBonus
	}

	return clampPercent(historyPoints + clientPoints + depth(project.Requirements, skills))
}

func relevance(skillIDs []uuid.UUID, required map[uuid.UUID]struct{}) float64 {
	if len(required) == 0 || len(skillIDs) == 0 {
		return 0
	}
	seen := make(map[uuid.UUID]struct{}, len(skillIDs))
	overlap := 0
	for _, id := range skillIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := required[id]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(required))
}

func recency(a Assignment, now time.Time) float64 {
	if a.Active() {
		return 1
	}
	if a.EndDate == nil {
		return staleFactor
	}
	if now.Sub(*a.EndDate) <= recentWindow {
		return 1
	}
	return staleFactor
}

func depth(reqs []Requirement, skills []EmployeeSkill) float64 {
	if len(reqs) == 0 {
		return 0
	}
	bySkillID := indexSkills(skills)

	var sum float64
	var importanceTotal float64
	for _, r := range reqs {
		importance := float64(r.ImportanceLevel)
		importanceTotal += importance
		es, ok := bySkillID[r.SkillID]
		if !ok {
			continue
		}
		sum += importance * math.Min(es.YearsExperience, yearsSaturation) / yearsSaturation
	}
	if importanceTotal <= 0 {
		return 0
	}
	return depthCap * sum / importanceTotal
}
