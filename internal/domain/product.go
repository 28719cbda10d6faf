package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to a seller's business and a category within it.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	BusinessName string          `json:"business_name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	ImageURL     string          `json:"image_url,omitempty"`
	UserID       string          `json:"user_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
