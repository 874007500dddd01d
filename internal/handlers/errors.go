package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

// svcError maps service sentinel errors onto HTTP responses. Unmatched
// errors become opaque 500s; the slog/Sentry layers carry the detail.
func svcError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrSelfRoleChange):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrTalentNotFound),
		errors.Is(err, services.ErrLogisticsNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAccountDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrUnknownRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
