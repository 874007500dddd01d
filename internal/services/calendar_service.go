package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/calendar"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
	"github.com/showcall/showcall-backend/internal/realtime"
)

const calendarTable = "calendar_events"

// CalendarService executes composed event queries and handles event writes.
// Every write publishes a change notice so connected clients refetch.
type CalendarService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewCalendarService(db *gorm.DB, hub *realtime.Hub) *CalendarService {
	return &CalendarService{db: db, hub: hub}
}

// ViewerFor builds the query composer's viewer context: capability set plus
// the talent profiles linked to the caller.
func (s *CalendarService) ViewerFor(profile *models.UserProfile) (calendar.Viewer, error) {
	viewer := calendar.Viewer{Capabilities: permissions.ForRole(profile.Role)}

	var talentIDs []uuid.UUID
	if err := s.db.Model(&models.TalentProfile{}).
		Where("user_id = ?", profile.UserID).
		Pluck("id", &talentIDs).Error; err != nil {
		return viewer, fmt.Errorf("failed to resolve talent linkage: %w", err)
	}
	viewer.TalentIDs = talentIDs
	return viewer, nil
}

// List executes a composed query. The predicate is applied in one scope so a
// failure never yields partially-filtered results.
func (s *CalendarService) List(q calendar.Query) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	pred := q.Resolve(time.Now().UTC())
	if err := s.db.Scopes(pred.Scope()).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("calendar load failed: %w", err)
	}
	return events, nil
}

func (s *CalendarService) Get(id uuid.UUID) (*models.CalendarEvent, error) {
	var ev models.CalendarEvent
	if err := s.db.First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (s *CalendarService) Create(actor Actor, viewer calendar.Viewer, req *dto.EventRequest) (*models.CalendarEvent, error) {
	if err := authorizeEventWrite(viewer, req.TalentID); err != nil {
		return nil, err
	}

	ev, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	ev.ID = uuid.New()
	ev.CreatedBy = actor.UserID

	if err := s.db.Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.hub.Publish(calendarTable, "insert", ev.ID)
	return ev, nil
}

func (s *CalendarService) Update(actor Actor, viewer calendar.Viewer, id uuid.UUID, req *dto.EventRequest) (*models.CalendarEvent, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// The caller must be allowed to touch both the event's current talent
	// assignment and the requested one.
	if err := authorizeEventWrite(viewer, existing.TalentID); err != nil {
		return nil, err
	}
	if err := authorizeEventWrite(viewer, req.TalentID); err != nil {
		return nil, err
	}

	updated, err := eventFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.db.Save(updated).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.hub.Publish(calendarTable, "update", updated.ID)
	return updated, nil
}

func (s *CalendarService) Delete(actor Actor, viewer calendar.Viewer, id uuid.UUID) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := authorizeEventWrite(viewer, existing.TalentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.EventTravel{}, &models.EventHotel{},
			&models.EventTransport{}, &models.EventContact{},
		} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.CalendarEvent{}, "id = ?", id).Error; err != nil {
			return err
		}
		s.hub.Publish(calendarTable, "delete", id)
		return nil
	})
}

// authorizeEventWrite enforces the write side of the visibility rule:
// calendar:edit writes anything; calendar:edit_own writes only events
// assigned to the caller's own talents (so never unassigned events).
func authorizeEventWrite(viewer calendar.Viewer, talentID *uuid.UUID) error {
	if viewer.Capabilities.Has(permissions.CalendarEdit) {
		return nil
	}
	if !viewer.Capabilities.Has(permissions.CalendarEditOwn) {
		return ErrNotAuthorized
	}
	if talentID == nil {
		return ErrNotAuthorized
	}
	for _, own := range viewer.TalentIDs {
		if own == *talentID {
			return nil
		}
	}
	return ErrNotAuthorized
}

func eventFromRequest(req *dto.EventRequest) (*models.CalendarEvent, error) {
	if req.EventTitle == "" {
		return nil, errors.New("event title is required")
	}
	if !models.ValidStatus(req.Status) {
		return nil, fmt.Errorf("invalid status %q", req.Status)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	endDate := startDate
	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
	}
	if endDate.Before(startDate) {
		return nil, errors.New("end_date before start_date")
	}

	return &models.CalendarEvent{
		TalentID:        req.TalentID,
		EventTitle:      req.EventTitle,
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AllDay:          req.AllDay,
		Status:          req.Status,
		VenueName:       req.VenueName,
		LocationCity:    req.LocationCity,
		LocationState:   req.LocationState,
		LocationCountry: req.LocationCountry,
		NotesPublic:     req.NotesPublic,
		URL:             req.URL,
	}, nil
}
