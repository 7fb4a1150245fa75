package handler

import (
	"errors"
	"time"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/employee"
	"talent-match/internal/domain/project"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc       usecase.ProjectUsecase
	validate *validation.Validator
}

func NewProjectHandler(uc usecase.ProjectUsecase, v *validation.Validator) *ProjectHandler {
	return &ProjectHandler{uc: uc, validate: v}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects", middleware.RequireRole(employee.RoleAdmin, employee.RoleManager))
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:project_id", h.Get)
	grp.Put("/:project_id", h.Update)
	grp.Delete("/:project_id", middleware.RequireRole(employee.RoleAdmin), h.Delete)

	grp.Post("/:project_id/members", h.AddMember)
	grp.Put("/:project_id/members/:member_id", h.UpdateMember)
	grp.Delete("/:project_id/members/:member_id", h.RemoveMember)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	var q dto.ProjectListQuery
	if err := bindQuery(c, h.validate, &q); err != nil {
		return err
	}

	filter := repository.ProjectFilter{Status: project.Status(q.Status)}
	if q.ClientID != "" {
		id, err := uuid.Parse(q.ClientID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid client_id", nil, err)
		}
		filter.ClientID = &id
	}

	items, err := h.uc.ListProjects(c.Context(), filter)
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	res := make([]dto.ProjectResponse, 0, len(items))
	for _, p := range items {
		res = append(res, dto.NewProjectResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	p, err := h.uc.GetProject(c.Context(), id)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateProject(c.Context(), usecase.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		ClientID:     req.ClientID,
		Status:       project.Status(req.Status),
		StartDate:    start,
		EndDate:      end,
		Requirements: requirementInputs(req.Skills),
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Created(c, dto.NewProjectResponse(created))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	in := usecase.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		StartDate:   start,
		EndDate:     end,
	}
	if req.Status != nil {
		s := project.Status(*req.Status)
		in.Status = &s
	}
	if req.Skills != nil {
		reqs := requirementInputs(*req.Skills)
		in.Requirements = &reqs
	}

	updated, err := h.uc.UpdateProject(c.Context(), id, in)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectResponse(updated))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProject(c.Context(), id); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProjectHandler) AddMember(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	m, err := h.uc.AddMember(c.Context(), projectID, usecase.AddMemberInput{
		EmployeeID: req.EmployeeID,
		Role:       req.Role,
		Allocation: req.Allocation,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Created(c, dto.NewMemberResponse(m))
}

func (h *ProjectHandler) UpdateMember(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		return err
	}

	var req dto.UpdateMemberRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	m, err := h.uc.UpdateMember(c.Context(), projectID, memberID, usecase.UpdateMemberInput{
		Role:       req.Role,
		Allocation: req.Allocation,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMemberResponse(m))
}

func (h *ProjectHandler) RemoveMember(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}
	memberID, err := uuidParam(c, "member_id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveMember(c.Context(), projectID, memberID); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseDates(start, end *string) (*time.Time, *time.Time, error) {
	s, err := dto.ParseDate(start)
	if err != nil {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid start_date", nil, err)
	}
	e, err := dto.ParseDate(end)
	if err != nil {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid end_date", nil, err)
	}
	return s, e, nil
}

func requirementInputs(in []dto.RequirementRequest) []usecase.RequirementInput {
	out := make([]usecase.RequirementInput, 0, len(in))
	for _, r := range in {
		out = append(out, usecase.RequirementInput{
			SkillID:         r.SkillID,
			ImportanceLevel: r.ImportanceLevel,
			RequiredLevel:   r.RequiredLevel,
		})
	}
	return out
}

func mapProjectUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidImportanceLevel),
		errors.Is(err, usecase.ErrInvalidRequiredLevel),
		errors.Is(err, usecase.ErrInvalidAllocation),
		errors.Is(err, usecase.ErrInvalidProjectStatus),
		errors.Is(err, usecase.ErrInvalidDateRange):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrMemberNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project member not found", nil, err)
	case errors.Is(err, usecase.ErrClientNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Client not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrMemberAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Employee already on project", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
