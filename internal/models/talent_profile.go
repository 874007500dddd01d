package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TalentProfile is the bookable performer entity. Leaving the talent role
// deactivates it (historical bookings reference it); it is never hard-deleted
// outside a full user purge.
type TalentProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string    `gorm:"size:200" json:"name"`
	Slug             string    `gorm:"size:250;uniqueIndex" json:"slug"`
	Active           bool      `gorm:"default:true" json:"active"`
	PublicVisibility bool      `gorm:"default:false" json:"public_visibility"`
	HeadshotURL      string    `gorm:"size:500" json:"headshot_url"`
	Bio              string    `gorm:"type:text" json:"bio"`
	SortRank         int       `gorm:"default:0;index" json:"sort_rank"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Slugify lowercases and dash-joins a display name for URL use.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
