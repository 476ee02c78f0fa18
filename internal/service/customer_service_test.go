package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-service/internal/repository"
	"github.com/spec-kit/customer-service/internal/service"
	apperrors "github.com/spec-kit/customer-service/pkg/util/errorutil"
)

func newService() (*service.CustomerService, *repository.MemoryCustomerRepository) {
	repo := repository.NewMemoryCustomerRepository()
	svc := service.NewCustomerService(service.CustomerDependencies{CustomerRepo: repo})
	return svc, repo
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func strPtr(s string) *string { return &s }

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and stamps actor", func(t *testing.T) {
		svc, _ := newService()
		customer, err := svc.Create(ctx, "actor-1", service.CustomerInput{
			Name:  "John Smith",
			Email: "john@x.com",
			Phone: strPtr("+1-555-0100"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, customer.ID)
		assert.False(t, customer.IsDeleted)
		require.NotNil(t, customer.CreatedBy)
		assert.Equal(t, "actor-1", *customer.CreatedBy)
		assert.False(t, customer.UpdatedAt.Before(customer.CreatedAt))
	})

	t.Run("validation failures leave no partial effect", func(t *testing.T) {
		svc, repo := newService()

		cases := []service.CustomerInput{
			{Name: "", Email: "a@x.com"},
			{Name: strings.Repeat("a", 101), Email: "a@x.com"},
			{Name: "A", Email: ""},
			{Name: "A", Email: "not-an-email"},
			{Name: "A", Email: "a@x.com", Phone: strPtr("123456789012345678901")},
		}
		for _, input := range cases {
			_, err := svc.Create(ctx, "actor-1", input)
			assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		}

		_, total, err := repo.List(ctx, repository.CustomerFilter{Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("active email conflict does not mutate the store", func(t *testing.T) {
		svc, repo := newService()
		_, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, "actor-1", service.CustomerInput{Name: "B", Email: "a@x.com"})
		assert.Equal(t, "CONFLICT", errCode(t, err))

		_, total, err := repo.List(ctx, repository.CustomerFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("deleted customer email is reusable", func(t *testing.T) {
		svc, _ := newService()
		old, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "John", Email: "john@x.com"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, "actor-1", old.ID))

		fresh, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "New John", Email: "john@x.com"})
		require.NoError(t, err)

		page, err := svc.List(ctx, service.CustomerListInput{Page: 1, PageSize: 10, Email: strPtr("john@x.com")})
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalCount)
		assert.Equal(t, fresh.ID, page.Items[0].ID)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields and refreshes updated_at", func(t *testing.T) {
		svc, _ := newService()
		customer, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)
		created := customer.CreatedAt

		time.Sleep(time.Millisecond)
		updated, err := svc.Update(ctx, "actor-2", customer.ID, service.CustomerInput{
			Name:    "A Renamed",
			Email:   "a@x.com",
			Address: strPtr("1 Oak Street"),
		})
		require.NoError(t, err)
		assert.Equal(t, "A Renamed", updated.Name)
		assert.True(t, updated.UpdatedAt.After(created))
		require.NotNil(t, updated.UpdatedBy)
		assert.Equal(t, "actor-2", *updated.UpdatedBy)
	})

	t.Run("email change collides with another active customer", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)
		b, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "B", Email: "b@x.com"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, "actor-1", b.ID, service.CustomerInput{Name: "B", Email: "a@x.com"})
		assert.Equal(t, "CONFLICT", errCode(t, err))
	})

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		svc, _ := newService()
		a, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, "actor-1", a.ID, service.CustomerInput{Name: "A2", Email: "a@x.com"})
		assert.NoError(t, err)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Update(ctx, "actor-1", "missing", service.CustomerInput{Name: "A", Email: "a@x.com"})
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted customer disappears from reads", func(t *testing.T) {
		svc, _ := newService()
		customer, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "actor-1", customer.ID))

		_, err = svc.Get(ctx, customer.ID)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))

		page, err := svc.List(ctx, service.CustomerListInput{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
	})

	t.Run("repeat delete is a no-op", func(t *testing.T) {
		svc, _ := newService()
		customer, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "actor-1", customer.ID))
		assert.NoError(t, svc.Delete(ctx, "actor-1", customer.ID))
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		svc, _ := newService()
		err := svc.Delete(ctx, "actor-1", "missing")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestCustomerServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("search over fifteen customers with three matches", func(t *testing.T) {
		svc, _ := newService()
		for i := 0; i < 12; i++ {
			_, err := svc.Create(ctx, "actor-1", service.CustomerInput{
				Name:  fmt.Sprintf("Customer %02d", i),
				Email: fmt.Sprintf("customer%02d@x.com", i),
			})
			require.NoError(t, err)
		}
		for i, name := range []string{"John Smith", "Jane Smithers", "Bob Jones"} {
			email := fmt.Sprintf("match%d@x.com", i)
			if name == "Bob Jones" {
				email = "bob@smith.io"
			}
			_, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: name, Email: email})
			require.NoError(t, err)
		}

		page, err := svc.List(ctx, service.CustomerListInput{
			Page:       1,
			PageSize:   10,
			SearchTerm: strPtr("smith"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalCount)
		assert.LessOrEqual(t, len(page.Items), 10)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("page math", func(t *testing.T) {
		svc, _ := newService()
		for i := 0; i < 25; i++ {
			_, err := svc.Create(ctx, "actor-1", service.CustomerInput{
				Name:  fmt.Sprintf("Customer %02d", i),
				Email: fmt.Sprintf("customer%02d@x.com", i),
			})
			require.NoError(t, err)
		}

		page, err := svc.List(ctx, service.CustomerListInput{Page: 3, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, 25, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 3, page.Page)
	})

	t.Run("non-positive page size rejected", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.List(ctx, service.CustomerListInput{Page: 1, PageSize: 0})
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("page size clamped to the cap", func(t *testing.T) {
		svc, _ := newService()
		page, err := svc.List(ctx, service.CustomerListInput{Page: 1, PageSize: 5000})
		require.NoError(t, err)
		assert.Equal(t, 100, page.PageSize)
	})

	t.Run("negative page clamps to first", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.Create(ctx, "actor-1", service.CustomerInput{Name: "A", Email: "a@x.com"})
		require.NoError(t, err)

		page, err := svc.List(ctx, service.CustomerListInput{Page: -3, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Items, 1)
	})

	t.Run("empty result keeps zero total pages", func(t *testing.T) {
		svc, _ := newService()
		page, err := svc.List(ctx, service.CustomerListInput{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, page.TotalCount)
		assert.Zero(t, page.TotalPages)
		assert.NotNil(t, page.Items)
	})
}
