package usecase

import (
	"context"

	"talent-match/internal/domain/employee"
	ucuser "talent-match/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, employeeID uuid.UUID) (employee.Employee, error)
	UpdateMe(ctx context.Context, employeeID uuid.UUID, in ucuser.UpdateMeInput) (employee.Employee, error)
}

// User serves the signed-in employee's own profile. Department changes move the
// employee between filtered candidate pools, so updates invalidate cached results.
type User struct {
	svc          *ucuser.Service
	invalidation *Invalidation
}

func NewUserUsecase(employees employee.Repository, inv *Invalidation) *User {
	return &User{svc: ucuser.NewService(employees), invalidation: inv}
}

func (u *User) GetMe(ctx context.Context, employeeID uuid.UUID) (employee.Employee, error) {
	return u.svc.GetMe(ctx, employeeID)
}

func (u *User) UpdateMe(ctx context.Context, employeeID uuid.UUID, in ucuser.UpdateMeInput) (employee.Employee, error) {
	e, err := u.svc.UpdateMe(ctx, employeeID, in)
	if err != nil {
		return employee.Employee{}, err
	}
	u.invalidation.MatchingDataChanged(ctx, employeeID, "employee_profile_updated")
	return e, nil
}
