package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a flower product in the catalogue.
// Prices are in CHF; Stock is never negative.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CategoryID  string          `json:"categoryId" db:"category_id"`
	Season      string          `json:"season,omitempty" db:"season"`
	Region      string          `json:"region,omitempty" db:"region"`
	Farmer      string          `json:"farmer,omitempty" db:"farmer"`
	ImageURL    string          `json:"imageUrl,omitempty" db:"image_url"`
	IsActive    bool            `json:"isActive" db:"is_active"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Search     string
	CategoryID string
	Season     string
	Region     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string // "name", "price" or "created_at"
	SortOrder  string // "asc" or "desc"
	Limit      int
	Offset     int
}
