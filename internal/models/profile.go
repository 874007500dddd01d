package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleTalent   = "talent"
	RoleBusiness = "business"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleTalent, RoleBusiness:
		return true
	}
	return false
}

// UserProfile is the domain-side record for a user: display data, the current
// role and the account's active flag. Version is an optimistic lock taken by
// role transitions; any write racing a transition loses the version check and
// retries.
type UserProfile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Email              string     `gorm:"size:255;not null;index" json:"email"`
	FirstName          string     `gorm:"size:100" json:"first_name"`
	LastName           string     `gorm:"size:100" json:"last_name"`
	Phone              string     `gorm:"size:50" json:"phone"`
	AvatarURL          string     `gorm:"size:500" json:"avatar_url"`
	BackgroundImageURL string     `gorm:"size:500" json:"background_image_url"`
	Role               string     `gorm:"size:20;not null;default:'talent';index" json:"role"`
	Active             bool       `gorm:"default:true" json:"active"`
	Version            int        `gorm:"not null;default:1" json:"-"`
	LastLogin          *time.Time `json:"last_login"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
