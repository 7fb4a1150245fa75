package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/employee"
	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/response"
	"talent-match/internal/pkg/validation"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchingHandler struct {
	uc       usecase.MatchingUsecase
	validate *validation.Validator
}

func NewMatchingHandler(uc usecase.MatchingUsecase, v *validation.Validator) *MatchingHandler {
	return &MatchingHandler{uc: uc, validate: v}
}

func (h *MatchingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects/:project_id", middleware.RequireRole(employee.RoleAdmin, employee.RoleManager))
	grp.Post("/matching", h.RunMatching)
	grp.Get("/recommendations", h.Recommendations)
}

func (h *MatchingHandler) RunMatching(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	var req dto.MatchingRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, h.validate, &req); err != nil {
			return err
		}
	}

	res, err := h.uc.RunMatching(c.Context(), projectID, req.RawWeights())
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MatchingHandler) Recommendations(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "project_id")
	if err != nil {
		return err
	}

	var q dto.RecommendationQuery
	if err := bindQuery(c, h.validate, &q); err != nil {
		return err
	}

	res, err := h.uc.Recommend(c.Context(), projectID, usecase.RecommendationRequest{
		Limit:      q.Limit,
		MinScore:   q.MinScore,
		Department: q.Department,
		Weights:    q.RawWeights(),
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidWeights):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid weights", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid matching input", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, usecase.ErrNoCandidates):
		return middleware.NewAppError(fiber.StatusBadRequest, "No candidates available", nil, err)
	case errors.Is(err, matching.ErrInconsistentData):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Inconsistent matching data", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
