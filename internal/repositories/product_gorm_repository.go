package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var updatableColumns = []string{"name", "description", "price", "stock_quantity", "category", "updated_at"}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAll retrieves all products ordered by id.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, productNotFound(id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindByName retrieves the products whose name contains name, ignoring case.
// Postgres folds case for every letter; SQLite's LIKE only folds ASCII.
func (r *GORMProductRepository) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where(r.nameMatch(), containsPattern(name)).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by name %q: %w", name, err)
	}
	return products, nil
}

func (r *GORMProductRepository) nameMatch() string {
	if r.db.Dialector.Name() == "postgres" {
		return `name ILIKE ? ESCAPE '\'`
	}
	return `name LIKE ? ESCAPE '\'`
}

// Save inserts a new product; the store assigns its ID.
func (r *GORMProductRepository) Save(ctx context.Context, product *models.Product) error {
	if product.ID != 0 {
		return fmt.Errorf("product already has ID %d", product.ID)
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every mutable column of an existing product, including
// cleared (nil) optional fields.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select(updatableColumns).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"stock_quantity": product.StockQuantity,
			"category":       product.Category,
			"updated_at":     product.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return productNotFound(product.ID)
	}
	return nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productNotFound(id)
			}
			return fmt.Errorf("failed to get product by ID %d: %w", id, err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored products.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
