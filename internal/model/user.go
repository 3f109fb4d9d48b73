package model

import "time"

// User is a person or entity that can hold credentials and/or an issuing
// role. The role and address columns are a denormalized hint for display;
// the ledger's access-control contract is the authorization oracle.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Role      string    `json:"role" db:"role"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

const (
	RoleUser   = "user"
	RoleIssuer = "issuer"
	RoleAdmin  = "admin"
)

const (
	UserStatusInactive  = "inactive"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)
