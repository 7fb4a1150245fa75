package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/usecase"
	ucuser "talent-match/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc       usecase.UserUsecase
	validate *validation.Validator
}

func NewUserHandler(uc usecase.UserUsecase, v *validation.Validator) *UserHandler {
	return &UserHandler{uc: uc, validate: v}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Patch("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	id, err := currentEmployeeID(c)
	if err != nil {
		return err
	}

	e, err := h.uc.GetMe(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(e))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	id, err := currentEmployeeID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	e, err := h.uc.UpdateMe(c.Context(), id, ucuser.UpdateMeInput{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Password:   req.Password,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployeeResponse(e))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
