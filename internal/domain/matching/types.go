package matching

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

// Project statuses that count as an active assignment for availability.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Skill struct {
	ID       uuid.UUID
	Name     string
	Category string
}

// EmployeeSkill is one (employee, skill) record. Proficiency is on the 1-5 scale.
type EmployeeSkill struct {
	SkillID          uuid.UUID
	ProficiencyLevel int
	YearsExperience  float64
}

// Requirement is a required skill of the target project. RequiredLevel falls back to
// ImportanceLevel when nil.
type Requirement struct {
	SkillID         uuid.UUID
	ImportanceLevel int
	RequiredLevel   *int
}

func (r Requirement) requiredLevel() int {
	if r.RequiredLevel != nil {
		return *r.RequiredLevel
	}
	return r.ImportanceLevel
}

// Assignment is one entry of an employee's project history.
type Assignment struct {
	ProjectID uuid.UUID
	ClientID  *uuid.UUID
	Status    string
	// Allocation is the share of the employee's time on the project, (0,1]. Zero means full time.
	Allocation float64
	EndDate    *time.Time
	SkillIDs   []uuid.UUID
}

func (a Assignment) Active() bool {
	return a.Status == StatusPlanning || a.Status == StatusInProgress
}

type Employee struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
}

// CandidateInput is one member of the candidate pool as resolved by the caller.
type CandidateInput struct {
	Employee Employee
	Skills   []EmployeeSkill
	History  []Assignment
}

type Project struct {
	ID           uuid.UUID
	Name         string
	ClientID     *uuid.UUID
	Requirements []Requirement
}

// RawWeights are the caller-supplied importance weights. A nil field is absent.
type RawWeights struct {
	Skill        *float64
	Experience   *float64
	Availability *float64
}

type Weights struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
}

func (w Weights) Sum() float64 {
	return w.Skill + w.Experience + w.Availability
}

// Input is everything one matching invocation needs. Catalog must contain every skill
// referenced by the project requirements.
type Input struct {
	Project    Project
	Catalog    map[uuid.UUID]Skill
	Candidates []CandidateInput
	Weights    RawWeights
	// Now is the reference time for recency. Callers pass it explicitly so that
	// repeated runs over the same snapshot agree.
	Now time.Time
}

type MatchedSkill struct {
	SkillID       uuid.UUID `json:"skill_id"`
	Name          string    `json:"name"`
	EmployeeLevel int       `json:"employee_level"`
	RequiredLevel int       `json:"required_level"`
}

type Scores struct {
	Total        float64 `json:"total"`
	SkillMatch   float64 `json:"skill_match"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
}

type Candidate struct {
	Employee           Employee       `json:"employee"`
	Scores             Scores         `json:"scores"`
	MatchedSkills      []MatchedSkill `json:"matched_skills"`
	MissingSkills      []string       `json:"missing_skills"`
	TotalProjects      int            `json:"total_projects"`
	PastClientProjects int            `json:"past_client_projects"`
}

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

type ProjectSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	RequiredSkills []string  `json:"required_skills"`
}

type Summary struct {
	TotalCandidates  int `json:"total_candidates"`
	ExcellentMatches int `json:"excellent_matches"`
	GoodMatches      int `json:"good_matches"`
	FairMatches      int `json:"fair_matches"`
	PoorMatches      int `json:"poor_matches"`
}

type Categorized struct {
	Excellent []Candidate `json:"excellent"`
	Good      []Candidate `json:"good"`
	Fair      []Candidate `json:"fair"`
	Poor      []Candidate `json:"poor"`
}

type Result struct {
	Project     ProjectSummary `json:"project"`
	Summary     Summary        `json:"summary"`
	Categorized Categorized    `json:"categorized_recommendations"`
	WeightsUsed Weights        `json:"weights_used"`
}
