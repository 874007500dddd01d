package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/authctx"
	"github.com/showcall/showcall-backend/internal/calendar"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// queryFromCtx builds the composer query from URL params and the caller's
// viewer context.
func (h *CalendarHandler) queryFromCtx(c *fiber.Ctx) (calendar.Query, error) {
	profile := authctx.GetProfile(c)
	viewer, err := h.calendarService.ViewerFor(profile)
	if err != nil {
		return calendar.Query{}, err
	}

	q := calendar.Query{
		DateRange:        c.Query("date_range"),
		HideNotAvailable: c.Query("hide_not_available") == "true",
		Viewer:           viewer,
	}

	if year := c.Query("year"); year != "" {
		if n, err := strconv.Atoi(year); err == nil {
			q.SelectedYear = n
		}
	}
	if q.SelectedYear == 0 {
		q.SelectedYear = time.Now().Year()
	}

	// An absent statuses param means no filter; a present-but-empty one is an
	// explicit empty selection and matches nothing.
	if c.Request().URI().QueryArgs().Has("statuses") {
		q.Statuses = []string{}
		if statuses := c.Query("statuses"); statuses != "" {
			q.Statuses = strings.Split(statuses, ",")
		}
	}

	if talents := c.Query("talents"); talents != "" {
		for _, raw := range strings.Split(talents, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
				q.TalentIDs = append(q.TalentIDs, id)
			}
		}
	}

	return q, nil
}

func (h *CalendarHandler) List(c *fiber.Ctx) error {
	q, err := h.queryFromCtx(c)
	if err != nil {
		return svcError(c, err)
	}

	events, err := h.calendarService.List(q)
	if err != nil {
		// retryable load failure, no partial filtering
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Calendar load failed, please retry",
		})
	}
	return c.JSON(events)
}

func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	viewer, err := h.calendarService.ViewerFor(profile)
	if err != nil {
		return svcError(c, err)
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ev, err := h.calendarService.Create(services.ActorFromProfile(profile), viewer, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ev)
}

func (h *CalendarHandler) Update(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	viewer, err := h.calendarService.ViewerFor(profile)
	if err != nil {
		return svcError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ev, err := h.calendarService.Update(services.ActorFromProfile(profile), viewer, id, &req)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(ev)
}

func (h *CalendarHandler) Delete(c *fiber.Ctx) error {
	profile := authctx.GetProfile(c)
	viewer, err := h.calendarService.ViewerFor(profile)
	if err != nil {
		return svcError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	if err := h.calendarService.Delete(services.ActorFromProfile(profile), viewer, id); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// ExportICS streams the currently filtered listing as an iCalendar file.
func (h *CalendarHandler) ExportICS(c *fiber.Ctx) error {
	q, err := h.queryFromCtx(c)
	if err != nil {
		return svcError(c, err)
	}
	events, err := h.calendarService.List(q)
	if err != nil {
		return svcError(c, err)
	}

	c.Set("Content-Type", "text/calendar; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="showcall-calendar.ics"`)
	return calendar.WriteICS(c.Response().BodyWriter(), events, time.Now())
}

// ExportCSV streams the currently filtered listing as CSV.
func (h *CalendarHandler) ExportCSV(c *fiber.Ctx) error {
	q, err := h.queryFromCtx(c)
	if err != nil {
		return svcError(c, err)
	}
	events, err := h.calendarService.List(q)
	if err != nil {
		return svcError(c, err)
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="showcall-calendar.csv"`)
	return calendar.WriteCSV(c.Response().BodyWriter(), events)
}
