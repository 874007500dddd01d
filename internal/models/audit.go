package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLog is the application-level audit trail. Append-only: the
// application never updates or deletes rows, even on user purge.
type ActivityLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	AdminUserID *uuid.UUID     `gorm:"type:uuid;index" json:"admin_user_id"`
	Action      string         `gorm:"size:100;not null;index" json:"action"`
	Details     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

// SecurityEvent is the security audit trail, written alongside activity logs
// for privileged operations. Append-only as well.
type SecurityEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Event     string         `gorm:"size:100;not null;index" json:"event"`
	Severity  string         `gorm:"size:20;default:'info'" json:"severity"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	ActorID   *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id"`
	IP        string         `gorm:"size:45" json:"ip"`
	Details   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"details"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

// LoginRecord backs the login-history CSV export.
type LoginRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Email     string    `gorm:"size:255" json:"email"`
	IP        string    `gorm:"size:45" json:"ip"`
	UserAgent string    `gorm:"size:400" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
