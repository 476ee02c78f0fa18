package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-service/internal/domain"
)

// AccountRepository defines persistence access for API accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, password_hash, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, status, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, status, created_at, updated_at
        FROM accounts WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

// MemoryAccountRepository keeps accounts in memory for the DSN-less mode.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewMemoryAccountRepository builds an empty store.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]domain.Account)}
}

func (m *MemoryAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now
	m.accounts[account.ID] = *account
	return nil
}

func (m *MemoryAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (m *MemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id := range m.accounts {
		if m.accounts[id].Email == email {
			account := m.accounts[id]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}
