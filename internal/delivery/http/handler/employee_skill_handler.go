package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EmployeeSkillHandler struct {
	uc       usecase.EmployeeSkillUsecase
	validate *validation.Validator
}

func NewEmployeeSkillHandler(uc usecase.EmployeeSkillUsecase, v *validation.Validator) *EmployeeSkillHandler {
	return &EmployeeSkillHandler{uc: uc, validate: v}
}

func (h *EmployeeSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *EmployeeSkillHandler) List(c fiber.Ctx) error {
	me, err := currentEmployeeID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListEmployeeSkills(c.Context(), me)
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}

	res := make([]dto.EmployeeSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewEmployeeSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *EmployeeSkillHandler) Add(c fiber.Ctx) error {
	me, err := currentEmployeeID(c)
	if err != nil {
		return err
	}

	var req dto.AddEmployeeSkillRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	created, err := h.uc.AddEmployeeSkill(c.Context(), me, usecase.AddEmployeeSkillInput{
		SkillID:          req.SkillID,
		ProficiencyLevel: req.ProficiencyLevel,
		YearsExperience:  req.YearsExperience,
	})
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Created(c, dto.NewEmployeeSkillResponse(created))
}

func (h *EmployeeSkillHandler) Update(c fiber.Ctx) error {
	me, err := currentEmployeeID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateEmployeeSkillRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateEmployeeSkill(c.Context(), me, id, usecase.UpdateEmployeeSkillInput{
		ProficiencyLevel: req.ProficiencyLevel,
		YearsExperience:  req.YearsExperience,
	})
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeSkillResponse(updated))
}

func (h *EmployeeSkillHandler) Delete(c fiber.Ctx) error {
	me, err := currentEmployeeID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteEmployeeSkill(c.Context(), me, id); err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapEmployeeSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidProficiencyLevel),
		errors.Is(err, usecase.ErrInvalidYearsExperience):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already on profile", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
