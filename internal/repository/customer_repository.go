package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-service/internal/domain"
)

// ErrDuplicateEmail signals that another active customer already uses the
// email. The partial unique index raises it even when two writers race past
// the service-level pre-check.
var ErrDuplicateEmail = errors.New("email already used by an active customer")

// CustomerFilter captures list query parameters.
type CustomerFilter struct {
	SearchTerm  *string
	Email       *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

// CustomerRepository encapsulates customer persistence. List returns the
// requested page plus the total number of rows matching the filter.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string, activeOnly bool) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, name, email, phone, address, is_deleted, created_at, updated_at, created_by, updated_by`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, email, phone, address, created_by, updated_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, is_deleted, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.CreatedBy,
		customer.UpdatedBy,
	).Scan(&customer.ID, &customer.IsDeleted, &customer.CreatedAt, &customer.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET name=$1, email=$2, phone=$3, address=$4, is_deleted=$5,
            updated_by=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.IsDeleted,
		customer.UpdatedBy,
		customer.ID,
	).Scan(&customer.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string, activeOnly bool) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email=$1`
	if activeOnly {
		query += ` AND is_deleted = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, email)
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.IsDeleted,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.CreatedBy,
		&customer.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

// List runs a count query and a page query over the same WHERE clause so the
// reported total always reflects the filtered set, not the returned page.
func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, int, error) {
	where, args := buildListClauses(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM customers WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	sortSpec := ResolveSort(filter.SortBy, filter.SortOrder)
	direction := "ASC"
	if sortSpec.Descending {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY %s %s, id %s LIMIT %d OFFSET %d`,
		customerColumns, where, sortSpec.Column, direction, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// buildListClauses assembles the filter predicate. Clause order matters:
// soft-deleted rows are excluded before any optional filter applies.
func buildListClauses(filter CustomerFilter) (string, []any) {
	clauses := []string{"is_deleted = FALSE"}
	args := []any{}

	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(email) LIKE %s)", placeholder, placeholder))
	}
	if filter.Email != nil && strings.TrimSpace(*filter.Email) != "" {
		args = append(args, *filter.Email)
		clauses = append(clauses, fmt.Sprintf("email = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func scanCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.Address,
			&customer.IsDeleted,
			&customer.CreatedAt,
			&customer.UpdatedAt,
			&customer.CreatedBy,
			&customer.UpdatedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
