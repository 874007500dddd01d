package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

// RequireCapability loads the caller's profile and checks the capability
// against the current DB role, not the token's role claim: a role change
// takes effect immediately instead of at token expiry. The loaded profile is
// stashed in locals for handlers.
func RequireCapability(db *gorm.DB, cap permissions.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := loadProfile(c, db)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !profile.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is disabled",
			})
		}

		if !permissions.ForRole(profile.Role).Has(cap) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		}

		c.Locals("profile", profile)
		return c.Next()
	}
}

// LoadProfile stashes the caller's profile without a capability check, for
// routes any authenticated active user may hit.
func LoadProfile(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := loadProfile(c, db)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !profile.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is disabled",
			})
		}
		c.Locals("profile", profile)
		return c.Next()
	}
}

func loadProfile(c *fiber.Ctx, db *gorm.DB) (*models.UserProfile, error) {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
