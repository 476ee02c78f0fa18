package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/customer-service/internal/repository"
)

func TestResolveSort(t *testing.T) {
	cases := []struct {
		name       string
		sortBy     string
		sortOrder  string
		wantColumn string
		wantDesc   bool
	}{
		{"both blank defaults to created_at desc", "", "", "created_at", true},
		{"unknown key falls back to created_at desc", "bogus", "", "created_at", true},
		{"name asc when order blank", "name", "", "name", false},
		{"name desc", "name", "desc", "name", true},
		{"key match is case-insensitive", "NAME", "asc", "name", false},
		{"order match is case-insensitive", "email", "DESC", "email", true},
		{"createdAt camel case accepted", "createdAt", "asc", "created_at", false},
		{"snake case accepted", "created_at", "desc", "created_at", true},
		{"explicit asc on unknown key", "bogus", "asc", "created_at", false},
		{"whitespace trimmed", "  email  ", " desc ", "email", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := repository.ResolveSort(tc.sortBy, tc.sortOrder)
			assert.Equal(t, tc.wantColumn, spec.Column)
			assert.Equal(t, tc.wantDesc, spec.Descending)
		})
	}
}
