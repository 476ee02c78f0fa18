package domain

import "time"

// Customer is the aggregate for customer records. Deletion is a state
// transition: rows are never physically removed, IsDeleted flips to true
// and the record drops out of all reads and uniqueness checks.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	Address   *string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy *string
	UpdatedBy *string
}
