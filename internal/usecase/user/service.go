package user

import (
	"context"
	"errors"
	"strings"

	"talent-match/internal/domain/employee"
	"talent-match/internal/usecase/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("employee not found")
	ErrInternal     = errors.New("internal error")
)

// UpdateMeInput holds optional profile changes. Nil fields are left untouched.
type UpdateMeInput struct {
	Name       *string
	Department *string
	Position   *string
	Password   *string
}

type Service struct {
	employees employee.Repository
}

func NewService(employees employee.Repository) *Service {
	return &Service{employees: employees}
}

func (s *Service) GetMe(ctx context.Context, employeeID uuid.UUID) (employee.Employee, error) {
	e, err := s.employees.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, ErrNotFound
		}
		return employee.Employee{}, ErrInternal
	}
	return auth.Sanitize(e), nil
}

func (s *Service) UpdateMe(ctx context.Context, employeeID uuid.UUID, in UpdateMeInput) (employee.Employee, error) {
	e, err := s.employees.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, ErrNotFound
		}
		return employee.Employee{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return employee.Employee{}, ErrInvalidInput
		}
		e.Name = name
	}
	if in.Department != nil {
		e.Department = strings.TrimSpace(*in.Department)
	}
	if in.Position != nil {
		e.Position = strings.TrimSpace(*in.Position)
	}
	if in.Password != nil {
		if !auth.ValidPassword(*in.Password) {
			return employee.Employee{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.Employee{}, ErrInternal
		}
		e.PasswordHash = string(hash)
	}

	if err := s.employees.UpdateEmployee(ctx, e); err != nil {
		return employee.Employee{}, ErrInternal
	}

	updated, err := s.employees.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}
	return auth.Sanitize(updated), nil
}
