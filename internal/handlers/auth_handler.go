package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

// ResetTokenSink delivers a freshly issued password-reset token out of band.
type ResetTokenSink func(email, token string)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	resetSink   ResetTokenSink
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, resetSink ResetTokenSink) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, resetSink: resetSink}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return svcError(c, err)
		}
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return svcError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return svcError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(&req); err != nil {
		return svcError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// RequestReset always answers 200 so the endpoint cannot be used to probe
// which emails are registered.
func (h *AuthHandler) RequestReset(c *fiber.Ctx) error {
	var req dto.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := h.authService.RequestPasswordReset(req.Email)
	if err != nil {
		return svcError(c, err)
	}

	if token != "" && h.resetSink != nil {
		h.resetSink(req.Email, token)
	}
	return c.JSON(fiber.Map{"message": "If the address is registered, a reset link has been sent"})
}

func (h *AuthHandler) ConfirmReset(c *fiber.Ctx) error {
	var req dto.ResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return svcError(c, err)
		}
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.JSON(profile)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(services.ActorFromProfile(profile), profile.UserID, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(updated)
}

func formFileBytes(c *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("file is required")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, errors.New("unreadable file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, errors.New("unreadable file")
	}
	return fileHeader.Filename, data, nil
}

func (h *AuthHandler) UploadAvatar(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	name, data, err := formFileBytes(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	url, err := h.userService.SetAvatar(services.ActorFromProfile(profile), profile.UserID, name, data)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}

func (h *AuthHandler) UploadBackground(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	name, data, err := formFileBytes(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	url, err := h.userService.SetBackgroundImage(services.ActorFromProfile(profile), profile.UserID, name, data)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"background_image_url": url})
}
