package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Direction is the sort direction of a column.
type Direction int

const (
	// Ascending sorts smallest first.
	Ascending Direction = iota
	// Descending sorts largest first.
	Descending
)

// Sort order tokens accepted by ParseSortExpression.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the number of parts in "field:order".
const sortPartsMax = 2

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return SortOrderDesc
	}
	return SortOrderAsc
}

// SortState is the active sort. An empty ColumnID means unsorted.
type SortState struct {
	ColumnID  string
	Direction Direction
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool {
	return s.ColumnID != ""
}

// sortedOrder computes a stable ordering of keys under dir.
// Missing keys go last regardless of direction; ties keep their original order.
func sortedOrder(keys []Value, dir Direction) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(i, j int) int {
		a, b := keys[i], keys[j]
		switch {
		case a.IsMissing() && b.IsMissing():
			return 0
		case a.IsMissing():
			return 1
		case b.IsMissing():
			return -1
		}

		c := Compare(a, b)
		if dir == Descending {
			return -c
		}
		return c
	})

	return order
}

// ParseSortExpression parses a sort expression in "field:order" format.
// Supports:
//   - "field" - defaults to asc order
//   - "field:asc" - explicit ascending order
//   - "field:desc" - explicit descending order
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (field string, dir Direction, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", Ascending, errors.New("empty sort expression")
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", Ascending, fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", Ascending, errors.New("empty sort expression")
	}

	order := SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	switch order {
	case SortOrderAsc:
		return field, Ascending, nil
	case SortOrderDesc:
		return field, Descending, nil
	default:
		return "", Ascending, fmt.Errorf("invalid sort order: %q (must be asc or desc)", order)
	}
}
