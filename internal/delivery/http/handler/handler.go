package handler

import (
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func bindBody(c fiber.Ctx, v *validation.Validator, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return validate(v, out)
}

func bindQuery(c fiber.Ctx, v *validation.Validator, out any) error {
	if err := c.Bind().Query(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return validate(v, out)
}

func validate(v *validation.Validator, out any) error {
	if v == nil {
		return nil
	}
	if err := v.Validate(out); err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", validation.Fields(err), err)
	}
	return nil
}

func currentEmployeeID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(middleware.CtxEmployeeIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}
