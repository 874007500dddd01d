package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/realtime"
)

// ProductHandler serves the storefront catalog. Catalog only: there is no
// checkout or billing surface.
type ProductHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewProductHandler(db *gorm.DB, hub *realtime.Hub) *ProductHandler {
	return &ProductHandler{db: db, hub: hub}
}

// List is the public catalog: active products in display order.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Where("active = ?", true).
		Order("sort_rank ASC, name ASC").Find(&products).Error; err != nil {
		return svcError(c, err)
	}
	return c.JSON(products)
}

// ListAll is the admin catalog view, inactive products included.
func (h *ProductHandler) ListAll(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Order("sort_rank ASC, name ASC").Find(&products).Error; err != nil {
		return svcError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	product := models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Active:      req.Active == nil || *req.Active,
		SortRank:    req.SortRank,
	}
	if err := h.db.Create(&product).Error; err != nil {
		return svcError(c, err)
	}

	h.hub.Publish("products", "insert", product.ID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Product not found",
		})
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price_cents": req.PriceCents,
		"image_url":   req.ImageURL,
		"sort_rank":   req.SortRank,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := h.db.Model(&product).Updates(updates).Error; err != nil {
		return svcError(c, err)
	}

	h.hub.Publish("products", "update", product.ID)
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	res := h.db.Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return svcError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Product not found",
		})
	}

	h.hub.Publish("products", "delete", id)
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
