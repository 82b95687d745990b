package model

import "time"

// Book is a rentable title. Name is unique case-insensitively,
// enforced by a unique index on lower(name).
type Book struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	RentPerDay float64   `json:"rentPerDay"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
