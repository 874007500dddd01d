package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/calendar"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/realtime"
)

func seedEvent(t *testing.T, db *gorm.DB, talentID *uuid.UUID, title, date, status string) models.CalendarEvent {
	t.Helper()
	ev := models.CalendarEvent{
		ID:         uuid.New(),
		TalentID:   talentID,
		EventTitle: title,
		StartDate:  mustDate(date),
		EndDate:    mustDate(date),
		Status:     status,
	}
	require.NoError(t, db.Create(&ev).Error)
	return ev
}

func talentProfileFor(t *testing.T, db *gorm.DB, userID uuid.UUID) models.TalentProfile {
	t.Helper()
	var tp models.TalentProfile
	require.NoError(t, db.First(&tp, "user_id = ?", userID).Error)
	return tp
}

func titles(events []models.CalendarEvent) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.EventTitle)
	}
	return out
}

func TestListVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, realtime.NewHub())

	talentUser := seedUser(t, db, "talent@example.com", models.RoleTalent)
	otherUser := seedUser(t, db, "other@example.com", models.RoleTalent)
	own := talentProfileFor(t, db, talentUser.ID)
	other := talentProfileFor(t, db, otherUser.ID)

	seedEvent(t, db, &own.ID, "own gig", "2026-04-10", models.StatusBooked)
	seedEvent(t, db, &other.ID, "other gig", "2026-04-11", models.StatusBooked)
	seedEvent(t, db, nil, "company holiday", "2026-04-12", models.StatusNotAvailable)

	baseQuery := calendar.Query{SelectedYear: 2026, Statuses: models.EventStatuses}

	t.Run("staff sees everything", func(t *testing.T) {
		staff := seedUser(t, db, "staff@example.com", models.RoleStaff)
		viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
		require.NoError(t, err)

		q := baseQuery
		q.Viewer = viewer
		events, err := svc.List(q)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "other gig", "company holiday"}, titles(events))
	})

	t.Run("talent sees own plus unassigned", func(t *testing.T) {
		viewer, err := svc.ViewerFor(profileFor(t, db, talentUser.ID))
		require.NoError(t, err)

		q := baseQuery
		q.Viewer = viewer
		events, err := svc.List(q)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "company holiday"}, titles(events))
	})

	t.Run("talent filter cannot widen own visibility", func(t *testing.T) {
		viewer, err := svc.ViewerFor(profileFor(t, db, talentUser.ID))
		require.NoError(t, err)

		q := baseQuery
		q.Viewer = viewer
		q.TalentIDs = []uuid.UUID{other.ID}
		events, err := svc.List(q)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "company holiday"}, titles(events))
	})

	t.Run("staff narrowed filter keeps unassigned visible", func(t *testing.T) {
		staff := seedUser(t, db, "staff2@example.com", models.RoleStaff)
		viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
		require.NoError(t, err)

		q := baseQuery
		q.Viewer = viewer
		q.TalentIDs = []uuid.UUID{own.ID}
		events, err := svc.List(q)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "company holiday"}, titles(events))
	})

	t.Run("hide not_available drops the holiday", func(t *testing.T) {
		staff := seedUser(t, db, "staff3@example.com", models.RoleStaff)
		viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
		require.NoError(t, err)

		q := baseQuery
		q.Viewer = viewer
		q.HideNotAvailable = true
		events, err := svc.List(q)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "other gig"}, titles(events))
	})

	t.Run("no status filter behaves like the full selection", func(t *testing.T) {
		staff := seedUser(t, db, "staff4@example.com", models.RoleStaff)
		viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
		require.NoError(t, err)

		events, err := svc.List(calendar.Query{SelectedYear: 2026, Viewer: viewer})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"own gig", "other gig", "company holiday"}, titles(events))
	})

	t.Run("explicitly empty status selection matches nothing", func(t *testing.T) {
		staff := seedUser(t, db, "staff5@example.com", models.RoleStaff)
		viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
		require.NoError(t, err)

		events, err := svc.List(calendar.Query{SelectedYear: 2026, Statuses: []string{}, Viewer: viewer})
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestListDefaultFiltersShowUpcomingEvents(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, realtime.NewHub())

	staff := seedUser(t, db, "staff@example.com", models.RoleStaff)
	viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
	require.NoError(t, err)

	soon := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	seedEvent(t, db, nil, "walk-in booking", soon, models.StatusBooked)

	events, err := svc.List(calendar.Query{DateRange: calendar.RangeNext7, Viewer: viewer})
	require.NoError(t, err)
	assert.Equal(t, []string{"walk-in booking"}, titles(events))
}

func TestEventWriteAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, realtime.NewHub())

	talentUser := seedUser(t, db, "talent@example.com", models.RoleTalent)
	otherUser := seedUser(t, db, "other@example.com", models.RoleTalent)
	own := talentProfileFor(t, db, talentUser.ID)
	other := talentProfileFor(t, db, otherUser.ID)

	viewer, err := svc.ViewerFor(profileFor(t, db, talentUser.ID))
	require.NoError(t, err)
	actor := Actor{UserID: talentUser.ID, Role: models.RoleTalent}

	req := func(talentID *uuid.UUID) *dto.EventRequest {
		return &dto.EventRequest{
			TalentID:   talentID,
			EventTitle: "Showcase",
			StartDate:  "2026-04-10",
			Status:     models.StatusHold,
		}
	}

	// own assignment is allowed
	ev, err := svc.Create(actor, viewer, req(&own.ID))
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, ev.CreatedBy)

	// someone else's talent is not
	_, err = svc.Create(actor, viewer, req(&other.ID))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// nor are unassigned events for edit_own callers
	_, err = svc.Create(actor, viewer, req(nil))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// reassigning an own event away is also blocked
	_, err = svc.Update(actor, viewer, ev.ID, req(&other.ID))
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestEventValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, realtime.NewHub())

	staff := seedUser(t, db, "staff@example.com", models.RoleStaff)
	viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
	require.NoError(t, err)
	actor := Actor{UserID: staff.ID, Role: models.RoleStaff}

	_, err = svc.Create(actor, viewer, &dto.EventRequest{
		StartDate: "2026-04-10", Status: models.StatusBooked,
	})
	assert.Error(t, err, "title required")

	_, err = svc.Create(actor, viewer, &dto.EventRequest{
		EventTitle: "X", StartDate: "2026-04-10", Status: "maybe",
	})
	assert.Error(t, err, "unknown status rejected")

	_, err = svc.Create(actor, viewer, &dto.EventRequest{
		EventTitle: "X", StartDate: "2026-04-10", EndDate: "2026-04-09", Status: models.StatusBooked,
	})
	assert.Error(t, err, "end before start rejected")
}

func TestDeleteCascadesLogistics(t *testing.T) {
	db := newTestDB(t)
	hub := realtime.NewHub()
	svc := NewCalendarService(db, hub)

	staff := seedUser(t, db, "staff@example.com", models.RoleStaff)
	viewer, err := svc.ViewerFor(profileFor(t, db, staff.ID))
	require.NoError(t, err)

	ev := seedEvent(t, db, nil, "festival", "2026-07-04", models.StatusBooked)
	require.NoError(t, db.Create(&models.EventHotel{ID: uuid.New(), EventID: ev.ID, HotelName: "Inn"}).Error)

	ch := hub.Subscribe()
	require.NoError(t, svc.Delete(Actor{UserID: staff.ID, Role: models.RoleStaff}, viewer, ev.ID))

	var hotels int64
	require.NoError(t, db.Model(&models.EventHotel{}).Where("event_id = ?", ev.ID).Count(&hotels).Error)
	assert.Zero(t, hotels)

	change := <-ch
	assert.Equal(t, "calendar_events", change.Table)
	assert.Equal(t, "delete", change.Action)
}
