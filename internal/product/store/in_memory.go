package store

import (
	"slices"
	"sync"

	"github.com/abgdnv/productdash/internal/product/errors"
	"github.com/abgdnv/productdash/internal/product/model"
)

// inMemory implements ProductStore using an ordered slice.
type inMemory struct {
	mu       sync.RWMutex
	products []model.Product
	nextID   int
}

// NewInMemoryStore creates a ProductStore seeded with the given products.
// Seed products are renumbered 1..n in order so IDs stay unique.
func NewInMemoryStore(seed []model.Product) ProductStore {
	products := make([]model.Product, len(seed))
	for i, p := range seed {
		p.ID = i + 1
		products[i] = p
	}
	return &inMemory{
		products: products,
		nextID:   len(products) + 1,
	}
}

// FindAll retrieves all products.
func (s *inMemory) FindAll() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products)
}

// Count returns the number of products.
func (s *inMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

// Create creates a new product and returns it.
// IDs come from a counter that never goes back, so a deleted ID is never handed out again.
func (s *inMemory) Create(name string, price model.Number[float64], stock model.Number[int], productType model.ProductType) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := model.Product{
		ID:    s.nextID,
		Name:  name,
		Price: price,
		Stock: stock,
		Type:  productType,
	}
	s.nextID++
	s.products = append(s.products, product)

	return product
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.products, func(p model.Product) bool { return p.ID == id })
	if idx < 0 {
		return errors.ErrProductNotFound
	}
	s.products = slices.Delete(s.products, idx, idx+1)
	return nil
}

// Sort sorts the products with a stable sort.
func (s *inMemory) Sort(cmp func(a, b model.Product) int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(s.products, cmp)
}
