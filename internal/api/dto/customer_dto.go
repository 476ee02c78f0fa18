package dto

import "time"

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest payload.
type UpdateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerResponse represents one customer record.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *string   `json:"created_by,omitempty"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
}

// CustomerListResponse is a paginated result. TotalCount spans every row
// matching the filter, not only the returned page.
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// BulkCreateRequest payload.
type BulkCreateRequest struct {
	Count int `json:"count"`
}

// BulkItemErrorResponse describes one failed batch item.
type BulkItemErrorResponse struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BulkCreateResponse aggregates batch outcomes.
type BulkCreateResponse struct {
	SuccessCount     int                     `json:"success_count"`
	FailureCount     int                     `json:"failure_count"`
	CreatedCustomers []CustomerResponse      `json:"created_customers"`
	Errors           []BulkItemErrorResponse `json:"errors"`
}
