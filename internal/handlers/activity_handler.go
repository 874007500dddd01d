package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/services"
)

// ActivityHandler exposes the admin audit trails.
type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	logs, err := h.activityService.List(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(logs)
}

func (h *ActivityHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	logs, err := h.activityService.ListForUser(userID, c.QueryInt("limit", 50))
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(logs)
}

func (h *ActivityHandler) SecurityEvents(c *fiber.Ctx) error {
	events, err := h.activityService.ListSecurityEvents(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(events)
}
