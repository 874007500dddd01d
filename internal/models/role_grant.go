package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleGrant is the authoritative record of the single role a user currently
// holds. Exactly one row per active user; extra rows may exist only
// transiently inside a transition transaction.
type RoleGrant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AfterCreate provisions a talent profile the first time a user is granted
// the talent role. Later transitions back to talent reactivate the existing
// row instead; the coordinator never creates one directly.
func (g *RoleGrant) AfterCreate(tx *gorm.DB) error {
	if g.Role != RoleTalent {
		return nil
	}

	var existing TalentProfile
	err := tx.First(&existing, "user_id = ?", g.UserID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	name := ""
	var profile UserProfile
	if err := tx.First(&profile, "user_id = ?", g.UserID).Error; err == nil {
		name = profile.FirstName + " " + profile.LastName
	}

	talent := TalentProfile{
		ID:               uuid.New(),
		UserID:           g.UserID,
		Name:             name,
		Slug:             Slugify(name) + "-" + g.UserID.String()[:8],
		Active:           true,
		PublicVisibility: false,
	}
	return tx.Create(&talent).Error
}
