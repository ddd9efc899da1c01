package catalog

import (
	"context"
	"errors"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog defines read access to the product catalog.
// Consumers define this interface, not the storage implementation.
type Catalog interface {
	// GetByID returns the product with the given id, or ErrProductNotFound.
	// A missing product is a normal outcome, callers are expected to no-op.
	GetByID(ctx context.Context, id int64) (*Product, error)

	// ListByCategory returns products in catalog order. CategoryAll returns
	// the full catalog; an unknown category returns an empty slice, not an error.
	ListByCategory(ctx context.Context, category Category) ([]*Product, error)

	// Categories returns the categories present in the catalog, CategoryAll first.
	Categories(ctx context.Context) ([]Category, error)
}

// Memory is an immutable in-memory catalog.
type Memory struct {
	products []*Product
	byID     map[int64]*Product
}

func NewMemory(products []*Product) *Memory {
	m := &Memory{
		products: make([]*Product, 0, len(products)),
		byID:     make(map[int64]*Product, len(products)),
	}
	for _, p := range products {
		cp := *p
		m.products = append(m.products, &cp)
		m.byID[cp.ID] = &cp
	}
	return m
}

func (m *Memory) GetByID(_ context.Context, id int64) (*Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (m *Memory) ListByCategory(_ context.Context, category Category) ([]*Product, error) {
	if category == CategoryAll {
		return append([]*Product(nil), m.products...), nil
	}

	result := make([]*Product, 0)
	for _, p := range m.products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *Memory) Categories(_ context.Context) ([]Category, error) {
	categories := []Category{CategoryAll}
	seen := make(map[Category]bool)
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}
