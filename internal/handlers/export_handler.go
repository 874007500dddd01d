package handlers

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/services"
)

// ExportHandler streams admin data exports.
type ExportHandler struct {
	activityService *services.ActivityService
}

func NewExportHandler(activityService *services.ActivityService) *ExportHandler {
	return &ExportHandler{activityService: activityService}
}

// LoginHistory exports one user's login records as CSV.
func (h *ExportHandler) LoginHistory(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	records, err := h.activityService.LoginHistory(userID)
	if err != nil {
		return svcError(c, err)
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="login-history-%s-%s.csv"`,
		userID, time.Now().UTC().Format("20060102")))

	w := csv.NewWriter(c.Response().BodyWriter())
	if err := w.Write([]string{"timestamp", "email", "ip", "user_agent"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.Email,
			r.IP,
			r.UserAgent,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
