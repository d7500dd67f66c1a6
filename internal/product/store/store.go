// Package store provides an interface for product storage operations.
package store

import "github.com/abgdnv/productdash/internal/product/model"

// ProductStore is an interface for the ordered product collection.
// Order is significant: products are appended on creation and only move when sorted.
type ProductStore interface {
	// FindAll returns a copy of all products in their current order.
	// Returns an empty slice if no products exist.
	FindAll() []model.Product

	// Count returns the number of stored products.
	Count() int

	// Create appends a new product with the next free ID and returns it.
	Create(name string, price model.Number[float64], stock model.Number[int], productType model.ProductType) model.Product

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(id int) error

	// Sort reorders the products in place. Equal elements keep their relative order.
	Sort(cmp func(a, b model.Product) int)
}
