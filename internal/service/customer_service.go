package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-service/internal/domain"
	"github.com/spec-kit/customer-service/internal/events"
	"github.com/spec-kit/customer-service/internal/repository"
	apperrors "github.com/spec-kit/customer-service/pkg/util/errorutil"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 255
	maxPhoneLength   = 20
	maxAddressLength = 500

	// Hard cap on page size so a single list call cannot drag the whole
	// table through the wire.
	maxPageSize = 100
)

// CustomerService coordinates customer workflows.
type CustomerService struct {
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// CustomerDependencies bundles collaborators for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CustomerInput describes a create or update payload.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

// CustomerListInput describes list query parameters.
type CustomerListInput struct {
	Page        int
	PageSize    int
	SearchTerm  *string
	Email       *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string
	SortOrder   string
}

// CustomerPage is a window over the filtered customer set. TotalCount covers
// every row matching the filter, independent of the window.
type CustomerPage struct {
	Items      []domain.Customer
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}

// Create validates and persists a new customer. Email uniqueness is checked
// against the active set before the insert; the storage constraint remains
// the final arbiter when two writers race.
func (s *CustomerService) Create(ctx context.Context, actorID string, input CustomerInput) (*domain.Customer, error) {
	input.normalize()
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	actor := actorRef(actorID)
	customer := &domain.Customer{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, mapStoreError(err, input.Email)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventCustomerCreated,
		CustomerID: customer.ID,
		ActorID:    actor,
		Payload: events.CustomerCreatedPayload{
			Name:  customer.Name,
			Email: customer.Email,
		},
	})
	return customer, nil
}

// Get returns an active customer. Soft-deleted records are reported as
// not found.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	if customer.IsDeleted {
		return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
	}
	return customer, nil
}

// Update mutates an active customer. An email change re-runs the uniqueness
// check against the other active customers.
func (s *CustomerService) Update(ctx context.Context, actorID, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}
	if input.Email != customer.Email {
		if err := s.ensureEmailAvailable(ctx, input.Email, customer.ID); err != nil {
			return nil, err
		}
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.UpdatedBy = actorRef(actorID)

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, mapStoreError(err, input.Email)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventCustomerUpdated,
		CustomerID: customer.ID,
		ActorID:    customer.UpdatedBy,
		Payload:    events.CustomerUpdatedPayload{Email: customer.Email},
	})
	return customer, nil
}

// Delete marks a customer deleted. Deleting an already-deleted customer is a
// no-op; the record stays permanently excluded from reads and uniqueness.
func (s *CustomerService) Delete(ctx context.Context, actorID, id string) error {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return err
	}
	if customer.IsDeleted {
		return nil
	}

	customer.IsDeleted = true
	customer.UpdatedBy = actorRef(actorID)
	if err := s.customers.Update(ctx, customer); err != nil {
		return mapStoreError(err, customer.Email)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventCustomerDeleted,
		CustomerID: customer.ID,
		ActorID:    customer.UpdatedBy,
		Payload:    events.CustomerDeletedPayload{Email: customer.Email},
	})
	return nil
}

// List returns one page of active customers matching the filter plus the
// total across all pages.
func (s *CustomerService) List(ctx context.Context, input CustomerListInput) (*CustomerPage, error) {
	if input.PageSize <= 0 {
		return nil, apperrors.NewValidationError("page_size must be positive", nil)
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := repository.CustomerFilter{
		SearchTerm:  input.SearchTerm,
		Email:       input.Email,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		SortBy:      input.SortBy,
		SortOrder:   input.SortOrder,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}
	items, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []domain.Customer{}
	}
	return &CustomerPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *CustomerService) ensureEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.customers.GetByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflict("email already in use", map[string]any{"email": email})
	}
	return nil
}

func (input *CustomerInput) normalize() {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Phone != nil {
		trimmed := strings.TrimSpace(*input.Phone)
		if trimmed == "" {
			input.Phone = nil
		} else {
			input.Phone = &trimmed
		}
	}
	if input.Address != nil {
		trimmed := strings.TrimSpace(*input.Address)
		if trimmed == "" {
			input.Address = nil
		} else {
			input.Address = &trimmed
		}
	}
}

func validateCustomerInput(input CustomerInput) error {
	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	} else if len(input.Name) > maxNameLength {
		details["name"] = "must be at most 100 characters"
	}
	if input.Email == "" {
		details["email"] = "required"
	} else if len(input.Email) > maxEmailLength || !emailWellFormed(input.Email) {
		details["email"] = "invalid email address"
	}
	if input.Phone != nil && len(*input.Phone) > maxPhoneLength {
		details["phone"] = "must be at most 20 characters"
	}
	if input.Address != nil && len(*input.Address) > maxAddressLength {
		details["address"] = "must be at most 500 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid customer payload", details)
	}
	return nil
}

func emailWellFormed(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	return at < len(email)-1
}

func mapStoreError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return apperrors.NewConflict("email already in use", map[string]any{"email": email})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("customer", nil)
	}
	return err
}

func actorRef(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}

func (s *CustomerService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
