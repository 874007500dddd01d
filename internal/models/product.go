package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a storefront catalog entry. Catalog only, no checkout.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int       `gorm:"not null;default:0" json:"price_cents"`
	ImageURL    string    `gorm:"size:500" json:"image_url"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	SortRank    int       `gorm:"default:0" json:"sort_rank"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
