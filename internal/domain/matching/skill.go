package matching

import "github.com/google/uuid"

// NeutralSkillMatch is the skill match of a project without required skills.
// No constraint means no penalty.
const NeutralSkillMatch = 100.0

type SkillMatch struct {
	Percent float64
	Matched []MatchedSkill
	Missing []string
}

// ScoreSkills compares one employee's skill records with the project's requirements.
// Levels must already be validated.
func ScoreSkills(skills []EmployeeSkill, reqs []Requirement, catalog map[uuid.UUID]Skill) SkillMatch {
	out := SkillMatch{
		Matched: make([]MatchedSkill, 0, len(reqs)),
		Missing: make([]string, 0),
	}
	if len(reqs) == 0 {
		out.Percent = NeutralSkillMatch
		return out
	}

	bySkillID := indexSkills(skills)

	var weighted float64
	var importanceTotal float64
	for _, r := range reqs {
		importance := float64(r.ImportanceLevel)
		importanceTotal += importance

		name := catalog[r.SkillID].Name
		es, ok := bySkillID[r.SkillID]
		if !ok {
			out.Missing = append(out.Missing, name)
			continue
		}

		reqLvl := r.requiredLevel()
		weighted += importance * compatibility(es.ProficiencyLevel, reqLvl)
		out.Matched = append(out.Matched, MatchedSkill{
			SkillID:       r.SkillID,
			Name:          name,
			EmployeeLevel: es.ProficiencyLevel,
			RequiredLevel: reqLvl,
		})
	}

	if importanceTotal <= 0 {
		out.Percent = NeutralSkillMatch
		return out
	}
	out.Percent = clampPercent(weighted / importanceTotal)
	return out
}

// compatibility of a single skill in [0,100].
func compatibility(employeeLevel, requiredLevel int) float64 {
	if employeeLevel >= requiredLevel {
		return 100
	}
	return 100 * float64(employeeLevel) / float64(requiredLevel)
}

func indexSkills(skills []EmployeeSkill) map[uuid.UUID]EmployeeSkill {
	out := make(map[uuid.UUID]EmployeeSkill, len(skills))
	for _, s := range skills {
		out[s.SkillID] = s
	}
	return out
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
