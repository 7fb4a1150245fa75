package dto

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"max=100"`
}

type SkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category, CreatedAt: s.CreatedAt}
}

type AddEmployeeSkillRequest struct {
	SkillID          uuid.UUID `json:"skill_id" validate:"required"`
	ProficiencyLevel int       `json:"proficiency_level" validate:"required,min=1,max=5"`
	YearsExperience  float64   `json:"years_experience" validate:"gte=0"`
}

type UpdateEmployeeSkillRequest struct {
	ProficiencyLevel int     `json:"proficiency_level" validate:"required,min=1,max=5"`
	YearsExperience  float64 `json:"years_experience" validate:"gte=0"`
}

type EmployeeSkillResponse struct {
	ID               uuid.UUID `json:"id"`
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	SkillCategory    string    `json:"skill_category"`
	ProficiencyLevel int       `json:"proficiency_level"`
	YearsExperience  float64   `json:"years_experience"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewEmployeeSkillResponse(es skill.EmployeeSkill) EmployeeSkillResponse {
	return EmployeeSkillResponse{
		ID:               es.ID,
		SkillID:          es.SkillID,
		SkillName:        es.SkillName,
		SkillCategory:    es.SkillCategory,
		ProficiencyLevel: es.ProficiencyLevel,
		YearsExperience:  es.YearsExperience,
		UpdatedAt:        es.UpdatedAt,
	}
}
