package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

type TalentHandler struct {
	talentService *services.TalentService
}

func NewTalentHandler(talentService *services.TalentService) *TalentHandler {
	return &TalentHandler{talentService: talentService}
}

// Showcase is the public talent directory.
func (h *TalentHandler) Showcase(c *fiber.Ctx) error {
	talents, err := h.talentService.Showcase()
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(talents)
}

func (h *TalentHandler) BySlug(c *fiber.Ctx) error {
	talent, err := h.talentService.BySlug(c.Params("slug"))
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(talent)
}

// ListAll is the staff directory view, inactive talents included.
func (h *TalentHandler) ListAll(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))
	talents, err := h.talentService.ListAll(actor)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(talents)
}

func (h *TalentHandler) Update(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid talent id")
	}

	var req dto.TalentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	talent, err := h.talentService.Update(actor, id, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(talent)
}

func (h *TalentHandler) UploadHeadshot(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid talent id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "unreadable file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return badRequest(c, "unreadable file")
	}

	url, err := h.talentService.SetHeadshot(actor, id, fileHeader.Filename, data)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"headshot_url": url})
}

func (h *TalentHandler) Reorder(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.talentService.Reorder(actor, req.OrderedIDs); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order updated"})
}
