package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusBooked       = "booked"
	StatusHold         = "hold"
	StatusAvailable    = "available"
	StatusTentative    = "tentative"
	StatusCancelled    = "cancelled"
	StatusNotAvailable = "not_available"
)

// EventStatuses is the full status enum in display order.
var EventStatuses = []string{
	StatusBooked, StatusHold, StatusAvailable,
	StatusTentative, StatusCancelled, StatusNotAvailable,
}

func ValidStatus(status string) bool {
	for _, s := range EventStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CalendarEvent is a booking calendar entry. A nil TalentID marks an
// unassigned/global event, visible to every viewer under any talent filter.
type CalendarEvent struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TalentID        *uuid.UUID `gorm:"type:uuid;index" json:"talent_id"`
	EventTitle      string     `gorm:"size:300;not null" json:"event_title"`
	StartDate       time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate         time.Time  `gorm:"type:date;not null" json:"end_date"`
	StartTime       string     `gorm:"size:5" json:"start_time"`
	EndTime         string     `gorm:"size:5" json:"end_time"`
	AllDay          bool       `gorm:"default:false" json:"all_day"`
	Status          string     `gorm:"size:20;not null;index" json:"status"`
	VenueName       string     `gorm:"size:300" json:"venue_name"`
	LocationCity    string     `gorm:"size:100" json:"location_city"`
	LocationState   string     `gorm:"size:100" json:"location_state"`
	LocationCountry string     `gorm:"size:100" json:"location_country"`
	NotesPublic     string     `gorm:"type:text" json:"notes_public"`
	URL             string     `gorm:"size:500" json:"url"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
