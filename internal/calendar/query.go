package calendar

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

// Selectable year bounds for the year date-range mode. Requests outside the
// window are clamped, not rejected.
const (
	MinSelectableYear = 2025
	MaxSelectableYear = 2030
)

const (
	RangeNext7  = "next7"
	RangeNext30 = "next30"
	RangeNext90 = "next90"
)

// Viewer carries what the composer needs to know about the caller: its
// capability set and the talent profiles linked to it.
type Viewer struct {
	Capabilities permissions.Set
	TalentIDs    []uuid.UUID
}

// Query is the raw filter tuple coming off the calendar UI.
type Query struct {
	DateRange        string
	SelectedYear     int
	Statuses         []string
	TalentIDs        []uuid.UUID
	HideNotAvailable bool
	Viewer           Viewer
}

type visibility int

const (
	// visibilityAll: calendar:edit with no talent filter, global view.
	visibilityAll visibility = iota
	// visibilityNarrowed: calendar:edit narrowed to chosen talents plus
	// unassigned events.
	visibilityNarrowed
	// visibilityOwn: calendar:edit_own, restricted to the viewer's own
	// talents plus unassigned events.
	visibilityOwn
	// visibilityNone: no calendar capability at all.
	visibilityNone
)

// Predicate is the resolved, opaque read predicate. It describes the query;
// Scope translates it for the data layer in one shot so filters are never
// partially applied.
type Predicate struct {
	Start    time.Time
	End      time.Time
	Statuses []string // nil means no status predicate
	mode     visibility
	talents  []uuid.UUID
}

// Resolve turns the query tuple into a predicate. now anchors the relative
// date ranges.
func (q Query) Resolve(now time.Time) Predicate {
	p := Predicate{}
	p.Start, p.End = resolveDateRange(q.DateRange, q.SelectedYear, now)
	p.Statuses = resolveStatuses(q.Statuses, q.HideNotAvailable)

	switch {
	case q.Viewer.Capabilities.Has(permissions.CalendarEdit):
		if len(q.TalentIDs) > 0 {
			p.mode = visibilityNarrowed
			p.talents = q.TalentIDs
		} else {
			p.mode = visibilityAll
		}
	case q.Viewer.Capabilities.Has(permissions.CalendarEditOwn):
		p.mode = visibilityOwn
		p.talents = q.Viewer.TalentIDs
	default:
		p.mode = visibilityNone
	}
	return p
}

func resolveDateRange(dateRange string, selectedYear int, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch dateRange {
	case RangeNext7:
		return today, today.AddDate(0, 0, 7)
	case RangeNext30:
		return today, today.AddDate(0, 0, 30)
	case RangeNext90:
		return today, today.AddDate(0, 0, 90)
	}

	year := ClampYear(selectedYear)
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// ClampYear bounds a requested year to the selectable window.
func ClampYear(year int) int {
	if year < MinSelectableYear {
		return MinSelectableYear
	}
	if year > MaxSelectableYear {
		return MaxSelectableYear
	}
	return year
}

// resolveStatuses returns nil when no status predicate is needed. A nil
// selection means "no filter requested" and behaves like the full enum; an
// explicitly empty selection matches nothing. Enumerating every status
// composes the same query as omitting the filter.
func resolveStatuses(selected []string, hideNotAvailable bool) []string {
	if selected == nil {
		if !hideNotAvailable {
			return nil
		}
		out := make([]string, 0, len(models.EventStatuses)-1)
		for _, s := range models.EventStatuses {
			if s != models.StatusNotAvailable {
				out = append(out, s)
			}
		}
		return out
	}

	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if models.ValidStatus(s) {
			chosen[s] = true
		}
	}

	all := len(chosen) == len(models.EventStatuses)
	if all && !hideNotAvailable {
		return nil
	}

	var out []string
	for _, s := range models.EventStatuses {
		if hideNotAvailable && s == models.StatusNotAvailable {
			continue
		}
		if all || chosen[s] {
			out = append(out, s)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Scope translates the predicate into a GORM scope. Ordering is always
// ascending by start date.
func (p Predicate) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("start_date >= ? AND start_date <= ?", p.Start, p.End)

		if p.Statuses != nil {
			db = db.Where("status IN ?", p.Statuses)
		}

		switch p.mode {
		case visibilityAll:
			// global view, no talent predicate
		case visibilityNarrowed, visibilityOwn:
			// unassigned events stay visible under any talent filter
			if len(p.talents) > 0 {
				db = db.Where("talent_id IN ? OR talent_id IS NULL", p.talents)
			} else {
				db = db.Where("talent_id IS NULL")
			}
		case visibilityNone:
			db = db.Where("1 = 0")
		}

		return db.Order("start_date ASC, start_time ASC")
	}
}
