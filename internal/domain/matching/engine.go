package matching

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrEmptyPool is returned by Recommend, which needs at least one candidate.
var ErrEmptyPool = fmt.Errorf("%w: empty candidate pool", ErrInvalidInput)

type RecommendOptions struct {
	// Limit caps the number of returned candidates; zero or less means no cap.
	Limit    int
	MinScore float64
}

// Run scores every candidate of the pool against the project and returns the
// categorized result together with the weights actually applied.
func Run(in Input) (Result, error) {
	w, scored, err := scoreAll(in)
	if err != nil {
		return Result{}, err
	}
	return Categorize(Summarize(in.Project, in.Catalog), scored, w), nil
}

// Recommend returns the ranked candidates whose total reaches opts.MinScore.
func Recommend(in Input, opts RecommendOptions) ([]Candidate, Weights, error) {
	if len(in.Candidates) == 0 {
		return nil, Weights{}, ErrEmptyPool
	}
	if math.IsNaN(opts.MinScore) || opts.MinScore < 0 || opts.MinScore > 100 {
		return nil, Weights{}, fmt.Errorf("%w: min score must be within [0,100], got %v", ErrInvalidInput, opts.MinScore)
	}

	w, scored, err := scoreAll(in)
	if err != nil {
		return nil, Weights{}, err
	}

	out := make([]Candidate, 0, len(scored))
	for _, c := range Rank(scored) {
		if c.Scores.Total < opts.MinScore {
			continue
		}
		out = append(out, c)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, w, nil
}

func scoreAll(in Input) (Weights, []Candidate, error) {
	if err := Validate(in); err != nil {
		return Weights{}, nil, err
	}
	w, err := NormalizeWeights(in.Weights)
	if err != nil {
		return Weights{}, nil, err
	}

	scored := make([]Candidate, 0, len(in.Candidates))
	for _, c := range in.Candidates {
		scored = append(scored, ScoreCandidate(c, in.Project, in.Catalog, w, in.Now))
	}
	return w, scored, nil
}

// Summarize lists the project and the names of its required skills in requirement order.
func Summarize(p Project, catalog map[uuid.UUID]Skill) ProjectSummary {
	names := make([]string, 0, len(p.Requirements))
	for _, r := range p.Requirements {
		names = append(names, catalog[r.SkillID].Name)
	}
	return ProjectSummary{ID: p.ID, Name: p.Name, RequiredSkills: names}
}

// Validate checks an input before any scoring runs. Range violations wrap ErrInvalidInput;
// snapshots that contradict themselves wrap ErrInconsistentData.
func Validate(in Input) error {
	if in.Project.ID == uuid.Nil {
		return fmt.Errorf("%w: project id is required", ErrInvalidInput)
	}

	seenReq := make(map[uuid.UUID]struct{}, len(in.Project.Requirements))
	for _, r := range in.Project.Requirements {
		if r.SkillID == uuid.Nil {
			return fmt.Errorf("%w: requirement without skill id", ErrInconsistentData)
		}
		if !validLevel(r.ImportanceLevel) {
			return fmt.Errorf("%w: importance level %d out of range for skill %s", ErrInvalidInput, r.ImportanceLevel, r.SkillID)
		}
		if r.RequiredLevel != nil && !validLevel(*r.RequiredLevel) {
			return fmt.Errorf("%w: required level %d out of range for skill %s", ErrInvalidInput, *r.RequiredLevel, r.SkillID)
		}
		if _, dup := seenReq[r.SkillID]; dup {
			return fmt.Errorf("%w: duplicate requirement for skill %s", ErrInconsistentData, r.SkillID)
		}
		seenReq[r.SkillID] = struct{}{}
		if _, ok := in.Catalog[r.SkillID]; !ok {
			return fmt.Errorf("%w: required skill %s not in catalog", ErrInconsistentData, r.SkillID)
		}
	}

	seenEmp := make(map[uuid.UUID]struct{}, len(in.Candidates))
	for _, c := range in.Candidates {
		id := c.Employee.ID
		if id == uuid.Nil {
			return fmt.Errorf("%w: candidate without employee id", ErrInconsistentData)
		}
		if _, dup := seenEmp[id]; dup {
			return fmt.Errorf("%w: duplicate candidate %s", ErrInconsistentData, id)
		}
		seenEmp[id] = struct{}{}

		if err := validateCandidate(c); err != nil {
			return err
		}
	}
	return nil
}

func validateCandidate(c CandidateInput) error {
	id := c.Employee.ID
	seen := make(map[uuid.UUID]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		if !validLevel(s.ProficiencyLevel) {
			return fmt.Errorf("%w: proficiency level %d out of range for employee %s", ErrInvalidInput, s.ProficiencyLevel, id)
		}
		if math.IsNaN(s.YearsExperience) || s.YearsExperience < 0 {
			return fmt.Errorf("%w: years of experience must be >= 0 for employee %s", ErrInvalidInput, id)
		}
		if _, dup := seen[s.SkillID]; dup {
			return fmt.Errorf("%w: duplicate skill record %s for employee %s", ErrInconsistentData, s.SkillID, id)
		}
		seen[s.SkillID] = struct{}{}
	}
	for _, a := range c.History {
		if math.IsNaN(a.Allocation) || a.Allocation < 0 || a.Allocation > 1 {
			return fmt.Errorf("%w: allocation %v out of range for employee %s", ErrInvalidInput, a.Allocation, id)
		}
	}
	return nil
}

func validLevel(v int) bool {
	return v >= MinLevel && v <= MaxLevel
}
