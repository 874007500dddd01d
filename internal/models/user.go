package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the authentication identity. Domain data lives on UserProfile;
// this row only carries credentials and confirmation state.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	AuthProvider string    `gorm:"size:50;default:'email'" json:"-"`
	Confirmed    bool      `gorm:"default:true" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Signup metadata consumed by the provisioning hook, never persisted.
	SignupRole      string `gorm:"-" json:"-"`
	SignupFirstName string `gorm:"-" json:"-"`
	SignupLastName  string `gorm:"-" json:"-"`
}

// AfterCreate provisions the baseline profile and role grant for a new
// identity, the same way the hosted backend did it with a DB trigger.
// Dependent provisioning (talent profiles) hangs off the RoleGrant hook.
func (u *User) AfterCreate(tx *gorm.DB) error {
	role := u.SignupRole
	if !ValidRole(role) {
		role = RoleTalent
	}

	profile := UserProfile{
		ID:        uuid.New(),
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.SignupFirstName,
		LastName:  u.SignupLastName,
		Role:      role,
		Active:    true,
		Version:   1,
	}
	if err := tx.Create(&profile).Error; err != nil {
		return err
	}

	grant := RoleGrant{ID: uuid.New(), UserID: u.ID, Role: role}
	return tx.Create(&grant).Error
}
