package domain

import "time"

// Roles carried in an account's claims.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Account is a registered buyer or seller.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	BusinessName string    `json:"businessName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the resolved current user and its claims.
type Identity struct {
	ID           string
	Role         string
	BusinessName string
}

func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Role: a.Role, BusinessName: a.BusinessName}
}

func (i Identity) IsSeller() bool {
	return i.Role == RoleSeller
}
