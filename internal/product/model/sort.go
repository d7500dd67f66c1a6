package model

import (
	"fmt"
	"strings"

	producterrors "github.com/abgdnv/productdash/internal/product/errors"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
	SortByType  SortKey = "type"
)

// ParseSortKey validates a column name coming from the presentation layer.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByPrice, SortByStock, SortByType:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", producterrors.ErrInvalidSortKey, s)
}

// SortDirection is the order the next sort is applied in.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Comparator returns the ascending comparison for key.
// Name and type compare lexicographically, price and stock numerically.
func Comparator(key SortKey) func(a, b Product) int {
	switch key {
	case SortByPrice:
		return func(a, b Product) int { return CompareNumbers(a.Price, b.Price) }
	case SortByStock:
		return func(a, b Product) int { return CompareNumbers(a.Stock, b.Stock) }
	case SortByType:
		return func(a, b Product) int { return strings.Compare(string(a.Type), string(b.Type)) }
	default:
		return func(a, b Product) int { return strings.Compare(a.Name, b.Name) }
	}
}

// Directed wraps an ascending comparator so it sorts in direction d.
func Directed(d SortDirection, cmp func(a, b Product) int) func(a, b Product) int {
	if d == Descending {
		return func(a, b Product) int { return cmp(b, a) }
	}
	return cmp
}
