package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/realtime"
)

// ContentHandler serves the site-design content layer: typed key/value
// blocks grouped by page section.
type ContentHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewContentHandler(db *gorm.DB, hub *realtime.Hub) *ContentHandler {
	return &ContentHandler{db: db, hub: hub}
}

// GetSection returns a section's blocks as a typed map (public).
func (h *ContentHandler) GetSection(c *fiber.Ctx) error {
	section := c.Params("section")

	var blocks []models.ContentBlock
	if err := h.db.Where("section = ?", section).Find(&blocks).Error; err != nil {
		return svcError(c, err)
	}

	result := make(map[string]interface{})
	for _, block := range blocks {
		var value interface{}
		switch block.Type {
		case "bool":
			value, _ = strconv.ParseBool(block.Value)
		case "int":
			value, _ = strconv.Atoi(block.Value)
		case "json":
			json.Unmarshal([]byte(block.Value), &value)
		default:
			value = block.Value
		}
		result[block.Key] = value
	}

	return c.JSON(result)
}

// SetKey upserts one content block (content:manage).
func (h *ContentHandler) SetKey(c *fiber.Ctx) error {
	section := c.Params("section")
	key := c.Params("key")

	var req dto.SetContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	blockType := req.Type
	switch blockType {
	case "", "string":
		blockType = "string"
	case "bool", "int", "json":
	default:
		return badRequest(c, "type must be string, bool, int or json")
	}

	// Concurrent writers race the section+key unique index, so the write is a
	// single conflict-aware upsert rather than read-then-create.
	block := models.ContentBlock{
		Section: section,
		Key:     key,
		Value:   req.Value,
		Type:    blockType,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&block).Error; err != nil {
		return svcError(c, err)
	}
	// Re-read so the response carries the persisted row, not the candidate ID
	// discarded on conflict.
	if err := h.db.Where("section = ? AND key = ?", section, key).First(&block).Error; err != nil {
		return svcError(c, err)
	}

	h.hub.Publish("content_blocks", "update", block.ID)
	return c.JSON(block)
}

// DeleteKey removes one content block (content:manage).
func (h *ContentHandler) DeleteKey(c *fiber.Ctx) error {
	section := c.Params("section")
	key := c.Params("key")

	res := h.db.Where("section = ? AND key = ?", section, key).Delete(&models.ContentBlock{})
	if res.Error != nil {
		return svcError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Content key not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Content key deleted"})
}
