package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// MyAccount returns the caller's business account, provisioning it
// idempotently for business-role users.
func (h *BusinessHandler) MyAccount(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)

	acct, err := h.businessService.AccountForUser(profile.UserID)
	if err != nil {
		return svcError(c, err)
	}
	if acct == nil {
		acct, err = h.businessService.EnsureAccount(profile.UserID)
		if err != nil {
			return svcError(c, err)
		}
	}
	return c.JSON(acct)
}

func (h *BusinessHandler) Logistics(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	resp, err := h.businessService.Logistics(actor, eventID)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

func (h *BusinessHandler) AddTravel(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	var req dto.TravelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	travel, err := h.businessService.AddTravel(actor, eventID, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(travel)
}

func (h *BusinessHandler) AddHotel(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	var req dto.HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	hotel, err := h.businessService.AddHotel(actor, eventID, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(hotel)
}

func (h *BusinessHandler) AddTransport(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	var req dto.TransportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	transport, err := h.businessService.AddTransport(actor, eventID, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transport)
}

func (h *BusinessHandler) AddContact(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contact, err := h.businessService.AddContact(actor, eventID, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// DeleteLogistics removes one record; :kind is travel|hotel|transport|contact.
func (h *BusinessHandler) DeleteLogistics(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid record id")
	}

	if err := h.businessService.DeleteLogistics(actor, c.Params("kind"), id); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Record deleted"})
}
