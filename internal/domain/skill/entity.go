package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// EmployeeSkill is one self-declared skill record of an employee.
type EmployeeSkill struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	SkillCategory    string
	ProficiencyLevel int
	YearsExperience  float64
	UpdatedAt        time.Time
}
