package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

// UserHandler is the admin user-management surface. Every route behind it is
// guarded by the users:manage capability.
type UserHandler struct {
	userService *services.UserService
	roleService *services.RoleService
	authService *services.AuthService
}

func NewUserHandler(userService *services.UserService, roleService *services.RoleService, authService *services.AuthService) *UserHandler {
	return &UserHandler{userService: userService, roleService: roleService, authService: authService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))
	profiles, err := h.userService.List(actor)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(profiles)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.userService.Create(actor, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	profile, err := h.userService.Get(userID)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.roleService.ChangeRole(actor, userID, req.Role)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(profile)
}

func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.AdminSetPassword(actor, userID, req.Password); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// Delete permanently removes the user and everything derived from it.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor := services.ActorFromProfile(authctx.GetProfile(c))

	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.userService.HardDelete(actor, userID); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User permanently deleted"})
}
