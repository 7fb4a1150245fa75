package dto

import (
	"time"

	"talent-match/internal/domain/project"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type RequirementRequest struct {
	SkillID         uuid.UUID `json:"skill_id" validate:"required"`
	ImportanceLevel int       `json:"importance_level" validate:"required,min=1,max=5"`
	RequiredLevel   *int      `json:"required_level" validate:"omitempty,min=1,max=5"`
}

type CreateProjectRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Description string               `json:"description" validate:"max=5000"`
	ClientID    *uuid.UUID           `json:"client_id"`
	Status      string               `json:"status" validate:"omitempty,oneof=planning in_progress completed on_hold cancelled"`
	StartDate   *string              `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string              `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Skills      []RequirementRequest `json:"skills" validate:"omitempty,dive"`
}

// UpdateProjectRequest leaves absent fields unchanged. A present skills list
// replaces the project's requirements.
type UpdateProjectRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string               `json:"description" validate:"omitempty,max=5000"`
	ClientID    *uuid.UUID            `json:"client_id"`
	Status      *string               `json:"status" validate:"omitempty,oneof=planning in_progress completed on_hold cancelled"`
	StartDate   *string               `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string               `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Skills      *[]RequirementRequest `json:"skills" validate:"omitempty,dive"`
}

type ProjectListQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=planning in_progress completed on_hold cancelled"`
	ClientID string `query:"client_id" validate:"omitempty,uuid"`
}

type AddMemberRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Role       string    `json:"role" validate:"max=100"`
	Allocation *float64  `json:"allocation" validate:"omitempty,gt=0,lte=1"`
}

type UpdateMemberRequest struct {
	Role       *string  `json:"role" validate:"omitempty,max=100"`
	Allocation *float64 `json:"allocation" validate:"omitempty,gt=0,lte=1"`
}

type RequirementResponse struct {
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	ImportanceLevel int       `json:"importance_level"`
	RequiredLevel   *int      `json:"required_level"`
}

type MemberResponse struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Role         string    `json:"role"`
	Allocation   float64   `json:"allocation"`
	JoinedAt     time.Time `json:"joined_at"`
}

func NewMemberResponse(m project.Member) MemberResponse {
	return MemberResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		Role:         m.Role,
		Allocation:   m.Allocation,
		JoinedAt:     m.JoinedAt,
	}
}

type ProjectResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	ClientID     *uuid.UUID            `json:"client_id"`
	Status       string                `json:"status"`
	StartDate    *string               `json:"start_date"`
	EndDate      *string               `json:"end_date"`
	MemberCount  int                   `json:"member_count"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Requirements []RequirementResponse `json:"required_skills,omitempty"`
	Members      []MemberResponse      `json:"members,omitempty"`
}

func NewProjectResponse(p project.Project) ProjectResponse {
	res := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ClientID:    p.ClientID,
		Status:      string(p.Status),
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		MemberCount: p.MemberCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, r := range p.Requirements {
		res.Requirements = append(res.Requirements, RequirementResponse{
			SkillID:         r.SkillID,
			SkillName:       r.SkillName,
			ImportanceLevel: r.ImportanceLevel,
			RequiredLevel:   r.RequiredLevel,
		})
	}
	for _, m := range p.Members {
		res.Members = append(res.Members, NewMemberResponse(m))
	}
	return res
}

type ClientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type ClientListQuery struct {
	Search string `query:"search" validate:"max=255"`
}

type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProjectCount int       `json:"project_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewClientResponse(c project.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		ProjectCount: c.ProjectCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ParseDate reads an optional YYYY-MM-DD date.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
