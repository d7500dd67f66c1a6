// Package model holds the product dashboard domain types.
package model

import (
	"fmt"

	producterrors "github.com/abgdnv/productdash/internal/product/errors"
)

// ProductType is the category of a product. The empty value means unset.
type ProductType string

const (
	TypeNone        ProductType = ""
	TypeCosmetics   ProductType = "cosmetics"
	TypeDresses     ProductType = "dresses"
	TypeElectronics ProductType = "electronics"
)

// TypeOption is a selectable product type with its display label.
type TypeOption struct {
	Value ProductType `json:"value"`
	Label string      `json:"label"`
}

var typeOptions = []TypeOption{
	{Value: TypeCosmetics, Label: "Cosmetics"},
	{Value: TypeDresses, Label: "Dresses"},
	{Value: TypeElectronics, Label: "Electronics"},
}

// ProductTypes returns the known product types in display order.
func ProductTypes() []TypeOption {
	out := make([]TypeOption, len(typeOptions))
	copy(out, typeOptions)
	return out
}

// ParseProductType accepts one of the known types or the empty string.
func ParseProductType(s string) (ProductType, error) {
	if s == "" {
		return TypeNone, nil
	}
	for _, o := range typeOptions {
		if string(o.Value) == s {
			return o.Value, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", producterrors.ErrInvalidProductType, s)
}

// Product is a single row of the product collection.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price Number[float64] `json:"price"`
	Stock Number[int]     `json:"stock"`
	Type  ProductType     `json:"type"`
}

// StarterSet returns the products the dashboard starts with.
func StarterSet() []Product {
	return []Product{
		{ID: 1, Name: "Product 1", Price: Valid(100.0), Stock: Valid(50), Type: TypeCosmetics},
		{ID: 2, Name: "Product 2", Price: Valid(200.0), Stock: Valid(20), Type: TypeDresses},
		{ID: 3, Name: "Product 3", Price: Valid(150.0), Stock: Valid(10), Type: TypeElectronics},
	}
}
