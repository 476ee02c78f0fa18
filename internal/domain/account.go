package domain

import "time"

// AccountStatus represents lifecycle states for an API account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the domain model for authenticated API callers. Account IDs
// are recorded on customer rows as created_by/updated_by.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
