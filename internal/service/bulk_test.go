package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-service/internal/domain"
	"github.com/spec-kit/customer-service/internal/repository"
	"github.com/spec-kit/customer-service/internal/service"
)

// failingCreateRepo wraps the memory store and fails designated create
// attempts, simulating a uniqueness race lost at the storage constraint.
type failingCreateRepo struct {
	*repository.MemoryCustomerRepository
	calls       int
	failAttempt int
}

func (f *failingCreateRepo) Create(ctx context.Context, customer *domain.Customer) error {
	f.calls++
	if f.calls == f.failAttempt {
		return repository.ErrDuplicateEmail
	}
	return f.MemoryCustomerRepository.Create(ctx, customer)
}

func TestBulkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("count out of range rejected", func(t *testing.T) {
		svc, _ := newService()
		for _, count := range []int{0, -1, 1001} {
			_, err := svc.BulkCreate(ctx, "actor-1", count)
			assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		}
	})

	t.Run("all attempts succeed", func(t *testing.T) {
		svc, repo := newService()
		result, err := svc.BulkCreate(ctx, "actor-1", 5)
		require.NoError(t, err)

		assert.Equal(t, 5, result.SuccessCount)
		assert.Zero(t, result.FailureCount)
		assert.Len(t, result.Created, 5)
		assert.Empty(t, result.Errors)

		_, total, err := repo.List(ctx, repository.CustomerFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
	})

	t.Run("counts always reconcile with the request", func(t *testing.T) {
		svc, _ := newService()
		for _, count := range []int{1, 3, 17} {
			result, err := svc.BulkCreate(ctx, "actor-1", count)
			require.NoError(t, err)
			assert.Equal(t, count, result.SuccessCount+result.FailureCount)
			assert.Len(t, result.Created, result.SuccessCount)
			assert.Len(t, result.Errors, result.FailureCount)
		}
	})

	t.Run("failure at one index does not abort the batch", func(t *testing.T) {
		repo := &failingCreateRepo{
			MemoryCustomerRepository: repository.NewMemoryCustomerRepository(),
			failAttempt:              3, // item at index 2
		}
		svc := service.NewCustomerService(service.CustomerDependencies{CustomerRepo: repo})

		result, err := svc.BulkCreate(ctx, "actor-1", 5)
		require.NoError(t, err)

		assert.Equal(t, 4, result.SuccessCount)
		assert.Equal(t, 1, result.FailureCount)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Index)
		assert.NotEmpty(t, result.Errors[0].Message)

		// the four survivors are persisted regardless of index 2
		_, total, err := repo.List(ctx, repository.CustomerFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("generated candidates pass validation", func(t *testing.T) {
		svc, _ := newService()
		result, err := svc.BulkCreate(ctx, "actor-1", 50)
		require.NoError(t, err)
		assert.Equal(t, 50, result.SuccessCount)
		for _, customer := range result.Created {
			assert.NotEmpty(t, customer.Name)
			assert.Contains(t, customer.Email, "@")
			require.NotNil(t, customer.Phone)
			assert.LessOrEqual(t, len(*customer.Phone), 20)
		}
	})
}
