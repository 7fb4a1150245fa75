package dto

import (
	"time"

	"talent-match/internal/domain/employee"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Name       string `json:"name" validate:"required,max=255"`
	Department string `json:"department" validate:"max=255"`
	Position   string `json:"position" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateMeRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	Department *string `json:"department" validate:"omitempty,max=255"`
	Position   *string `json:"position" validate:"omitempty,max=255"`
	Password   *string `json:"password" validate:"omitempty,min=8,max=72"`
}

type EmployeeResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEmployeeResponse(e employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Email:      e.Email,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
		Role:       string(e.Role),
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}

type AuthResponse struct {
	Employee     *EmployeeResponse `json:"employee,omitempty"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
}
