package auth

import (
	"context"
	"errors"
	"strings"

	"talent-match/internal/domain/employee"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Department string
	Position   string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	employees employee.Repository
	cost      int
}

func NewService(employees employee.Repository) *Service {
	return &Service{employees: employees, cost: bcrypt.DefaultCost}
}

// Register creates a regular employee account. Elevated roles are granted out of band.
func (s *Service) Register(ctx context.Context, in RegisterInput) (employee.Employee, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || !ValidPassword(in.Password) {
		return employee.Employee{}, ErrInvalidInput
	}

	exists, err := s.employees.ExistsByEmail(ctx, email)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}
	if exists {
		return employee.Employee{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}

	e := employee.Employee{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Department:   strings.TrimSpace(in.Department),
		Position:     strings.TrimSpace(in.Position),
		Role:         employee.RoleEmployee,
		IsActive:     true,
	}

	if err := s.employees.CreateEmployee(ctx, e); err != nil {
		exists, exErr := s.employees.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return employee.Employee{}, ErrEmailAlreadyRegistered
		}
		return employee.Employee{}, ErrInternal
	}

	created, err := s.employees.GetEmployeeByID(ctx, e.ID)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}
	return Sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (employee.Employee, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return employee.Employee{}, ErrInvalidCredentials
	}

	e, err := s.employees.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, ErrInvalidCredentials
		}
		return employee.Employee{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(in.Password)); err != nil {
		return employee.Employee{}, ErrInvalidCredentials
	}
	if !e.IsActive {
		return employee.Employee{}, ErrInvalidCredentials
	}

	return Sanitize(e), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}

func Sanitize(e employee.Employee) employee.Employee {
	e.PasswordHash = ""
	return e
}
