package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/employee"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ClientHandler struct {
	uc       usecase.ClientUsecase
	validate *validation.Validator
}

func NewClientHandler(uc usecase.ClientUsecase, v *validation.Validator) *ClientHandler {
	return &ClientHandler{uc: uc, validate: v}
}

func (h *ClientHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	writers := middleware.RequireRole(employee.RoleAdmin, employee.RoleManager)
	grp := r.Group("/clients")
	grp.Get("/", h.List)
	grp.Get("/:client_id", h.Get)
	grp.Post("/", writers, h.Create)
	grp.Put("/:client_id", writers, h.Update)
}

func (h *ClientHandler) List(c fiber.Ctx) error {
	var q dto.ClientListQuery
	if err := bindQuery(c, h.validate, &q); err != nil {
		return err
	}

	items, err := h.uc.ListClients(c.Context(), q.Search)
	if err != nil {
		return mapClientUsecaseError(err)
	}

	res := make([]dto.ClientResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewClientResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ClientHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "client_id")
	if err != nil {
		return err
	}

	cl, err := h.uc.GetClient(c.Context(), id)
	if err != nil {
		return mapClientUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewClientResponse(cl))
}

func (h *ClientHandler) Create(c fiber.Ctx) error {
	var req dto.ClientRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	cl, err := h.uc.CreateClient(c.Context(), req.Name)
	if err != nil {
		return mapClientUsecaseError(err)
	}
	return response.Created(c, dto.NewClientResponse(cl))
}

func (h *ClientHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "client_id")
	if err != nil {
		return err
	}

	var req dto.ClientRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return err
	}

	cl, err := h.uc.UpdateClient(c.Context(), id, req.Name)
	if err != nil {
		return mapClientUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewClientResponse(cl))
}

func mapClientUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrClientNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Client not found", nil, err)
	case errors.Is(err, usecase.ErrClientNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Client name already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
