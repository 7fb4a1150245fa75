package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/project"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type RequirementInput struct {
	SkillID         uuid.UUID
	ImportanceLevel int
	RequiredLevel   *int
}

type CreateProjectInput struct {
	Name         string
	Description  string
	ClientID     *uuid.UUID
	Status       project.Status
	StartDate    *time.Time
	EndDate      *time.Time
	Requirements []RequirementInput
}

// UpdateProjectInput changes only the fields that are set. A non-nil
// Requirements replaces the whole requirement list, an empty one clears it.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	ClientID     *uuid.UUID
	Status       *project.Status
	StartDate    *time.Time
	EndDate      *time.Time
	Requirements *[]RequirementInput
}

type AddMemberInput struct {
	EmployeeID uuid.UUID
	Role       string
	Allocation *float64
}

type UpdateMemberInput struct {
	Role       *string
	Allocation *float64
}

type ProjectUsecase interface {
	ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]project.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (project.Project, error)
	CreateProject(ctx context.Context, in CreateProjectInput) (project.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (project.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, projectID uuid.UUID, in AddMemberInput) (project.Member, error)
	UpdateMember(ctx context.Context, projectID, memberID uuid.UUID, in UpdateMemberInput) (project.Member, error)
	RemoveMember(ctx context.Context, projectID, memberID uuid.UUID) error
}

// Project manages projects, their skill requirements and their members. Every
// write can move scores, so each one invalidates cached matching results.
type Project struct {
	repo         repository.ProjectRepository
	invalidation *Invalidation
}

func NewProjectUsecase(repo repository.ProjectRepository, inv *Invalidation) *Project {
	return &Project{repo: repo, invalidation: inv}
}

func (u *Project) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]project.Project, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}
	items, err := u.repo.ListProjects(ctx, filter)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Project) GetProject(ctx context.Context, id uuid.UUID) (project.Project, error) {
	p, err := u.repo.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, mapProjectErr(err)
	}
	return p, nil
}

func (u *Project) CreateProject(ctx context.Context, in CreateProjectInput) (project.Project, error) {
	p := project.Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ClientID:    in.ClientID,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if p.Status == "" {
		p.Status = project.StatusPlanning
	}
	if err := validateProject(p); err != nil {
		return project.Project{}, err
	}
	reqs, err := buildRequirements(in.Requirements)
	if err != nil {
		return project.Project{}, err
	}
	p.Requirements = reqs

	created, err := u.repo.CreateProject(ctx, p)
	if err != nil {
		return project.Project{}, mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, uuid.Nil, "project_created")
	return created, nil
}

func (u *Project) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (project.Project, error) {
	p, err := u.repo.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, mapProjectErr(err)
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.ClientID != nil {
		p.ClientID = in.ClientID
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if err := validateProject(p); err != nil {
		return project.Project{}, err
	}

	replace := in.Requirements != nil
	if replace {
		if p.Requirements, err = buildRequirements(*in.Requirements); err != nil {
			return project.Project{}, err
		}
	}

	updated, err := u.repo.UpdateProject(ctx, p, replace)
	if err != nil {
		return project.Project{}, mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, uuid.Nil, "project_updated")
	return updated, nil
}

func (u *Project) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.DeleteProject(ctx, id); err != nil {
		return mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, uuid.Nil, "project_deleted")
	return nil
}

func (u *Project) AddMember(ctx context.Context, projectID uuid.UUID, in AddMemberInput) (project.Member, error) {
	if in.EmployeeID == uuid.Nil {
		return project.Member{}, ErrInvalidInput
	}
	allocation := 1.0
	if in.Allocation != nil {
		allocation = *in.Allocation
	}
	if err := validateAllocation(allocation); err != nil {
		return project.Member{}, err
	}
	if _, err := u.repo.GetProject(ctx, projectID); err != nil {
		return project.Member{}, mapProjectErr(err)
	}

	m, err := u.repo.AddMember(ctx, project.Member{
		ID:         uuid.New(),
		ProjectID:  projectID,
		EmployeeID: in.EmployeeID,
		Role:       strings.TrimSpace(in.Role),
		Allocation: allocation,
	})
	if err != nil {
		return project.Member{}, mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, m.EmployeeID, "project_member_added")
	return m, nil
}

func (u *Project) UpdateMember(ctx context.Context, projectID, memberID uuid.UUID, in UpdateMemberInput) (project.Member, error) {
	p, err := u.repo.GetProject(ctx, projectID)
	if err != nil {
		return project.Member{}, mapProjectErr(err)
	}

	var cur *project.Member
	for i := range p.Members {
		if p.Members[i].ID == memberID {
			cur = &p.Members[i]
			break
		}
	}
	if cur == nil {
		return project.Member{}, ErrMemberNotFound
	}

	m := *cur
	if in.Role != nil {
		m.Role = strings.TrimSpace(*in.Role)
	}
	if in.Allocation != nil {
		m.Allocation = *in.Allocation
	}
	if err := validateAllocation(m.Allocation); err != nil {
		return project.Member{}, err
	}

	updated, err := u.repo.UpdateMember(ctx, m)
	if err != nil {
		return project.Member{}, mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, updated.EmployeeID, "project_member_updated")
	return updated, nil
}

func (u *Project) RemoveMember(ctx context.Context, projectID, memberID uuid.UUID) error {
	m, err := u.repo.RemoveMember(ctx, projectID, memberID)
	if err != nil {
		return mapProjectErr(err)
	}

	u.invalidation.MatchingDataChanged(ctx, m.EmployeeID, "project_member_removed")
	return nil
}

func validateProject(p project.Project) error {
	if p.Name == "" {
		return ErrInvalidInput
	}
	if !p.Status.Valid() {
		return ErrInvalidProjectStatus
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func buildRequirements(in []RequirementInput) ([]project.Requirement, error) {
	out := make([]project.Requirement, 0, len(in))
	seen := make(map[uuid.UUID]struct{}, len(in))
	for _, r := range in {
		if r.SkillID == uuid.Nil {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[r.SkillID]; dup {
			return nil, ErrInvalidInput
		}
		seen[r.SkillID] = struct{}{}

		if r.ImportanceLevel < matching.MinLevel || r.ImportanceLevel > matching.MaxLevel {
			return nil, ErrInvalidImportanceLevel
		}
		if r.RequiredLevel != nil && (*r.RequiredLevel < matching.MinLevel || *r.RequiredLevel > matching.MaxLevel) {
			return nil, ErrInvalidRequiredLevel
		}
		out = append(out, project.Requirement{
			SkillID:         r.SkillID,
			ImportanceLevel: r.ImportanceLevel,
			RequiredLevel:   r.RequiredLevel,
		})
	}
	return out, nil
}

func validateAllocation(a float64) error {
	if math.IsNaN(a) || a <= 0 || a > 1 {
		return ErrInvalidAllocation
	}
	return nil
}

func mapProjectErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repository.ErrClientNotFound):
		return ErrClientNotFound
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrSkillNotFound
	case errors.Is(err, repository.ErrMemberNotFound):
		return ErrMemberNotFound
	case errors.Is(err, repository.ErrMemberExists):
		return ErrMemberAlreadyExists
	case errors.Is(err, repository.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	default:
		return ErrInternal
	}
}
