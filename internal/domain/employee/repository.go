package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	CreateEmployee(ctx context.Context, e Employee) error
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateEmployee(ctx context.Context, e Employee) error
}
