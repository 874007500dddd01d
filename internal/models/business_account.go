package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessAccount links a business-role user to business event logistics.
// Created idempotently; the unique index backs the create-if-absent path.
type BusinessAccount struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CompanyName string    `gorm:"size:200" json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}
