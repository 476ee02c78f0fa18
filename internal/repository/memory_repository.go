package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-service/internal/domain"
)

// MemoryCustomerRepository is an in-memory CustomerRepository. It backs unit
// tests and serves as the storage fallback when POSTGRES_DSN is absent. The
// active-email uniqueness check runs under the repository lock, mirroring
// the partial unique index of the Postgres schema.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

// NewMemoryCustomerRepository builds an empty store.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{customers: make(map[string]domain.Customer)}
}

func (m *MemoryCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.customers {
		if !existing.IsDeleted && existing.Email == customer.Email {
			return ErrDuplicateEmail
		}
	}

	now := time.Now()
	customer.ID = uuid.NewString()
	customer.IsDeleted = false
	customer.CreatedAt = now
	customer.UpdatedAt = now
	m.customers[customer.ID] = *customer
	return nil
}

func (m *MemoryCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	if !customer.IsDeleted {
		for _, existing := range m.customers {
			if existing.ID != customer.ID && !existing.IsDeleted && existing.Email == customer.Email {
				return ErrDuplicateEmail
			}
		}
	}

	customer.UpdatedAt = time.Now()
	m.customers[customer.ID] = *customer
	return nil
}

func (m *MemoryCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customer, ok := m.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (m *MemoryCustomerRepository) GetByEmail(ctx context.Context, email string, activeOnly bool) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var match *domain.Customer
	for id := range m.customers {
		customer := m.customers[id]
		if customer.Email != email {
			continue
		}
		if activeOnly && customer.IsDeleted {
			continue
		}
		if match == nil || customer.CreatedAt.After(match.CreatedAt) {
			copied := customer
			match = &copied
		}
	}
	if match == nil {
		return nil, pgx.ErrNoRows
	}
	return match, nil
}

func (m *MemoryCustomerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int, error) {
	m.mu.RLock()
	filtered := make([]domain.Customer, 0, len(m.customers))
	for id := range m.customers {
		customer := m.customers[id]
		if matchesFilter(&customer, filter) {
			filtered = append(filtered, customer)
		}
	}
	m.mu.RUnlock()

	total := len(filtered)
	sortCustomers(filtered, ResolveSort(filter.SortBy, filter.SortOrder))

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(filtered) {
		return []domain.Customer{}, total, nil
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// matchesFilter applies the same predicate order as the SQL clause builder:
// deleted rows first, then search term, exact email, and the date range.
func matchesFilter(customer *domain.Customer, filter CustomerFilter) bool {
	if customer.IsDeleted {
		return false
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if !strings.Contains(strings.ToLower(customer.Name), term) &&
			!strings.Contains(strings.ToLower(customer.Email), term) {
			return false
		}
	}
	if filter.Email != nil && strings.TrimSpace(*filter.Email) != "" {
		if customer.Email != *filter.Email {
			return false
		}
	}
	if filter.CreatedFrom != nil && customer.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && customer.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

func sortCustomers(customers []domain.Customer, spec SortSpec) {
	sort.SliceStable(customers, func(i, j int) bool {
		cmp := compareBy(spec.Column, &customers[i], &customers[j])
		if cmp == 0 {
			cmp = strings.Compare(customers[i].ID, customers[j].ID)
		}
		if spec.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareBy(column string, a, b *domain.Customer) int {
	switch column {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
