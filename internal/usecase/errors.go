package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")

	ErrSkillAlreadyExists         = errors.New("skill already exists")
	ErrSkillNotFound              = errors.New("skill not found")
	ErrEmployeeSkillAlreadyExists = errors.New("employee skill already exists")
	ErrEmployeeSkillNotFound      = errors.New("employee skill not found")
	ErrInvalidProficiencyLevel    = errors.New("invalid proficiency level")
	ErrInvalidYearsExperience     = errors.New("invalid years of experience")

	ErrInvalidWeights  = errors.New("invalid weights")
	ErrProjectNotFound = errors.New("project not found")
	ErrNoCandidates    = errors.New("no candidates available")

	ErrInvalidImportanceLevel = errors.New("invalid importance level")
	ErrInvalidRequiredLevel   = errors.New("invalid required level")
	ErrInvalidAllocation      = errors.New("invalid allocation")
	ErrInvalidProjectStatus   = errors.New("invalid project status")
	ErrInvalidDateRange       = errors.New("end date before start date")
	ErrClientNotFound         = errors.New("client not found")
	ErrClientNameTaken        = errors.New("client name taken")
	ErrMemberNotFound         = errors.New("project member not found")
	ErrMemberAlreadyExists    = errors.New("employee already on project")
	ErrEmployeeNotFound       = errors.New("employee not found")
)
