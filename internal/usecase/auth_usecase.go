package usecase

import (
	"context"
	"errors"

	"talent-match/internal/domain/employee"
	"talent-match/internal/pkg/jwt"
	ucauth "talent-match/internal/usecase/auth"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (employee.Employee, TokenPair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (employee.Employee, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	authSvc   *ucauth.Service
	employees employee.Repository
	jwt       jwt.Service
}

func NewAuthUsecase(employees employee.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(employees), employees: employees, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (employee.Employee, TokenPair, error) {
	e, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return employee.Employee{}, TokenPair{}, err
	}
	pair, err := u.issue(e)
	if err != nil {
		return employee.Employee{}, TokenPair{}, err
	}
	return e, pair, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (employee.Employee, TokenPair, error) {
	e, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return employee.Employee{}, TokenPair{}, err
	}
	pair, err := u.issue(e)
	if err != nil {
		return employee.Employee{}, TokenPair{}, err
	}
	return e, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	e, err := u.employees.GetEmployeeByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}
	if !e.IsActive {
		return TokenPair{}, ErrUnauthorized
	}

	return u.issue(e)
}

func (u *Auth) issue(e employee.Employee) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(e.ID, e.Email, string(e.Role))
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(e.ID)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
