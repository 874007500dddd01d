package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentBlock stores typed site content values, keyed per section.
type ContentBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Section   string    `gorm:"size:100;not null;uniqueIndex:idx_content_section_key,priority:1;index:idx_content_section" json:"section"`
	Key       string    `gorm:"size:100;not null;uniqueIndex:idx_content_section_key,priority:2" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Type      string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cb *ContentBlock) BeforeCreate(tx *gorm.DB) error {
	if cb.ID == uuid.Nil {
		cb.ID = uuid.New()
	}
	return nil
}

func (ContentBlock) TableName() string {
	return "content_blocks"
}
