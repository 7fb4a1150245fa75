package project

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	default:
		return false
	}
}

type Client struct {
	ID           uuid.UUID
	Name         string
	ProjectCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Project carries Requirements and Members only when loaded as a detail view.
type Project struct {
	ID           uuid.UUID
	Name         string
	Description  string
	ClientID     *uuid.UUID
	Status       Status
	StartDate    *time.Time
	EndDate      *time.Time
	MemberCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Requirements []Requirement
	Members      []Member
}

// Requirement is one required skill of a project. RequiredLevel is optional.
type Requirement struct {
	SkillID         uuid.UUID
	SkillName       string
	ImportanceLevel int
	RequiredLevel   *int
}

type Member struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	Role         string
	Allocation   float64
	JoinedAt     time.Time
}
