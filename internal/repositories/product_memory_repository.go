package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"catalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[uint]models.Product
	lastID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
	}
}

// FindAll returns all products ordered by id.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(models.Product) bool { return true }), nil
}

// FindByID returns a product by its ID.
func (r *MemoryProductRepository) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, productNotFound(id)
	}
	return &product, nil
}

// FindByName returns the products whose name contains name, ignoring case.
func (r *MemoryProductRepository) FindByName(_ context.Context, name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	return r.collect(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

// Save adds a new product and assigns the next id. Ids are never reused.
func (r *MemoryProductRepository) Save(_ context.Context, product *models.Product) error {
	if product.ID != 0 {
		return fmt.Errorf("product already has ID %d", product.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	product.ID = r.lastID
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return productNotFound(product.ID)
	}
	updated := *product
	updated.CreatedAt = stored.CreatedAt
	r.products[product.ID] = updated
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return productNotFound(id)
	}
	delete(r.products, id)
	return nil
}

// Count returns the number of stored products.
func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}

// collect must be called with the lock held.
func (r *MemoryProductRepository) collect(keep func(models.Product) bool) []models.Product {
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
