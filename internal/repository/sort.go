package repository

import "strings"

var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"createdat":  "created_at",
	"created_at": "created_at",
}

// SortSpec is the resolved ordering for a list query.
type SortSpec struct {
	Column     string
	Descending bool
}

// ResolveSort maps requested sort parameters onto a deterministic ordering.
// Key matching is case-insensitive; unknown or absent keys fall back to
// created_at. Direction is descending when the order equals "desc"
// case-insensitively, or when no known key and no order were given.
func ResolveSort(sortBy, sortOrder string) SortSpec {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	column, known := sortColumns[key]
	if !known {
		column = "created_at"
	}

	order := strings.TrimSpace(sortOrder)
	switch {
	case strings.EqualFold(order, "desc"):
		return SortSpec{Column: column, Descending: true}
	case order == "" && !known:
		return SortSpec{Column: column, Descending: true}
	default:
		return SortSpec{Column: column, Descending: false}
	}
}
