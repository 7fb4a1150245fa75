package usecase

import (
	"context"
	"errors"
	"math"

	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type AddEmployeeSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel int
	YearsExperience  float64
}

type UpdateEmployeeSkillInput struct {
	ProficiencyLevel int
	YearsExperience  float64
}

type EmployeeSkillUsecase interface {
	ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]skill.EmployeeSkill, error)
	AddEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in AddEmployeeSkillInput) (skill.EmployeeSkill, error)
	UpdateEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID, in UpdateEmployeeSkillInput) (skill.EmployeeSkill, error)
	DeleteEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID) error
}

type EmployeeSkill struct {
	repo         repository.EmployeeSkillRepository
	invalidation *Invalidation
}

func NewEmployeeSkillUsecase(repo repository.EmployeeSkillRepository, inv *Invalidation) *EmployeeSkill {
	return &EmployeeSkill{repo: repo, invalidation: inv}
}

func (u *EmployeeSkill) ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]skill.EmployeeSkill, error) {
	items, err := u.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *EmployeeSkill) AddEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in AddEmployeeSkillInput) (skill.EmployeeSkill, error) {
	if in.SkillID == uuid.Nil {
		return skill.EmployeeSkill{}, ErrInvalidInput
	}
	if err := validateLevels(in.ProficiencyLevel, in.YearsExperience); err != nil {
		return skill.EmployeeSkill{}, err
	}

	created, err := u.repo.Create(ctx, skill.EmployeeSkill{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		SkillID:          in.SkillID,
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
	})
	if err != nil {
		return skill.EmployeeSkill{}, mapEmployeeSkillErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, employeeID, "employee_skill_added")
	return created, nil
}

func (u *EmployeeSkill) UpdateEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID, in UpdateEmployeeSkillInput) (skill.EmployeeSkill, error) {
	if id == uuid.Nil {
		return skill.EmployeeSkill{}, ErrInvalidInput
	}
	if err := validateLevels(in.ProficiencyLevel, in.YearsExperience); err != nil {
		return skill.EmployeeSkill{}, err
	}

	updated, err := u.repo.Update(ctx, skill.EmployeeSkill{
		ID:               id,
		EmployeeID:       employeeID,
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
	})
	if err != nil {
		return skill.EmployeeSkill{}, mapEmployeeSkillErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, employeeID, "employee_skill_updated")
	return updated, nil
}

func (u *EmployeeSkill) DeleteEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id, employeeID); err != nil {
		return mapEmployeeSkillErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, employeeID, "employee_skill_deleted")
	return nil
}

func validateLevels(proficiency int, years float64) error {
	if proficiency < matching.MinLevel || proficiency > matching.MaxLevel {
		return ErrInvalidProficiencyLevel
	}
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return ErrInvalidYearsExperience
	}
	return nil
}

func mapEmployeeSkillErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrEmployeeSkillExists):
		return ErrEmployeeSkillAlreadyExists
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrSkillNotFound
	case errors.Is(err, repository.ErrEmployeeSkillNotFound):
		return ErrEmployeeSkillNotFound
	case errors.Is(err, repository.ErrEmployeeSkillForbidden):
		return ErrForbidden
	default:
		return ErrInternal
	}
}
