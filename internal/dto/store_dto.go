package dto

import "github.com/google/uuid"

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Active      *bool  `json:"active"`
	SortRank    int    `json:"sort_rank"`
}

type SetContentRequest struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type ReorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}
