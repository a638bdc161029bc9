package repositories

import (
	"context"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// FindByID, Update and Delete fail with apperror.ErrNotFound when no product
// has the given id.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByName(ctx context.Context, name string) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

func productNotFound(id uint) error {
	return apperror.NotFound("product not found with id: %d", id)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching name anywhere, with
// wildcards in name taken literally.
func containsPattern(name string) string {
	return "%" + likeEscaper.Replace(name) + "%"
}
