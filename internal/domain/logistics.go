package domain

import "time"

// Logistics is a delivery partner row shown on the seller dashboard.
type Logistics struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
