package repositories_test

import (
	"context"
	"testing"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/database/dbtest"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newProduct(name string, price float64) *models.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Product{Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
}

func repositoryImplementations() map[string]func(t *testing.T) repositories.ProductRepository {
	return map[string]func(t *testing.T) repositories.ProductRepository{
		"gorm": func(t *testing.T) repositories.ProductRepository {
			return repositories.NewGORMProductRepository(dbtest.Open(t))
		},
		"memory": func(t *testing.T) repositories.ProductRepository {
			return repositories.NewMemoryProductRepository()
		},
	}
}

func TestProductRepository(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			t.Run("SaveAndFindByID", func(t *testing.T) { testSaveAndFindByID(t, newRepo(t)) })
			t.Run("FindByIDNotFound", func(t *testing.T) { testFindByIDNotFound(t, newRepo(t)) })
			t.Run("FindAll", func(t *testing.T) { testFindAll(t, newRepo(t)) })
			t.Run("FindByName", func(t *testing.T) { testFindByName(t, newRepo(t)) })
			t.Run("FindByNameNonASCII", func(t *testing.T) { testFindByNameNonASCII(t, newRepo(t)) })
			t.Run("Update", func(t *testing.T) { testUpdate(t, newRepo(t)) })
			t.Run("UpdateNotFound", func(t *testing.T) { testUpdateNotFound(t, newRepo(t)) })
			t.Run("Delete", func(t *testing.T) { testDelete(t, newRepo(t)) })
			t.Run("Count", func(t *testing.T) { testCount(t, newRepo(t)) })
			t.Run("IDsAreNotReused", func(t *testing.T) { testIDsAreNotReused(t, newRepo(t)) })
		})
	}
}

func testSaveAndFindByID(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	p := newProduct("Laptop", 1200)
	p.Description = strPtr("High performance laptop")
	p.StockQuantity = 10
	p.Category = strPtr("computers")

	require.NoError(t, repo.Save(ctx, p))
	require.NotZero(t, p.ID)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, "Laptop", found.Name)
	assert.Equal(t, "High performance laptop", *found.Description)
	assert.Equal(t, 1200.0, found.Price)
	assert.Equal(t, 10, found.StockQuantity)
	assert.Equal(t, "computers", *found.Category)
	assert.True(t, p.CreatedAt.Equal(found.CreatedAt), "created_at round trips")
	assert.True(t, p.UpdatedAt.Equal(found.UpdatedAt), "updated_at round trips")

	assert.Error(t, repo.Save(ctx, p), "saving a product that already has an id")
}

func testFindByIDNotFound(t *testing.T, repo repositories.ProductRepository) {
	_, err := repo.FindByID(context.Background(), 999999)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "999999")
}

func testFindAll(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	for _, name := range []string{"Laptop", "Keyboard", "Mouse"} {
		require.NoError(t, repo.Save(ctx, newProduct(name, 10)))
	}

	products, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, "Mouse", products[2].Name)
	assert.Less(t, products[0].ID, products[1].ID)
}

func testFindByName(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	for _, name := range []string{"Wireless Mouse", "mouse pad", "Keyboard", "100% Cotton", "snake_case"} {
		require.NoError(t, repo.Save(ctx, newProduct(name, 10)))
	}

	names := func(query string) []string {
		products, err := repo.FindByName(ctx, query)
		require.NoError(t, err)
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Wireless Mouse", "mouse pad"}, names("Mouse"))
	assert.Equal(t, []string{"Wireless Mouse", "mouse pad"}, names("MOUSE"))
	assert.Equal(t, []string{"Keyboard"}, names("eyb"))
	assert.Equal(t, []string{"100% Cotton"}, names("%"))
	assert.Equal(t, []string{"snake_case"}, names("_"))
	assert.Empty(t, names("monitor"))
}

func testFindByNameNonASCII(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newProduct("Écran Géant", 300)))

	for _, query := range []string{"Écran", "géant", "GéANT"} {
		products, err := repo.FindByName(ctx, query)
		require.NoError(t, err)
		require.Len(t, products, 1, query)
		assert.Equal(t, "Écran Géant", products[0].Name)
	}
}

// SQLite only folds ASCII letters, the memory store folds every letter.
func TestFindByName_NonASCIICaseFolding(t *testing.T) {
	ctx := context.Background()
	sqliteRepo := repositories.NewGORMProductRepository(dbtest.Open(t))
	memoryRepo := repositories.NewMemoryProductRepository()

	for _, repo := range []repositories.ProductRepository{sqliteRepo, memoryRepo} {
		require.NoError(t, repo.Save(ctx, newProduct("Écran Géant", 300)))
	}

	products, err := sqliteRepo.FindByName(ctx, "écran")
	require.NoError(t, err)
	assert.Empty(t, products)

	products, err = memoryRepo.FindByName(ctx, "écran")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func testUpdate(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	p := newProduct("Keyboard", 75)
	p.Description = strPtr("Mechanical keyboard")
	require.NoError(t, repo.Save(ctx, p))

	p.Price = 80
	p.Description = nil
	p.StockQuantity = 7
	p.UpdatedAt = p.UpdatedAt.Add(time.Second)
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, found.Price)
	assert.Nil(t, found.Description)
	assert.Equal(t, 7, found.StockQuantity)
	assert.True(t, p.UpdatedAt.Equal(found.UpdatedAt))
	assert.True(t, p.CreatedAt.Equal(found.CreatedAt))
}

func testUpdateNotFound(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	ghost := newProduct("Ghost", 1)
	ghost.ID = 424242

	err := repo.Update(ctx, ghost)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "update must not create records")
}

func testDelete(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	p := newProduct("Monitor", 200)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = repo.Delete(ctx, p.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func testCount(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	a, b := newProduct("A", 1), newProduct("B", 2)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.Delete(ctx, a.ID))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func testIDsAreNotReused(t *testing.T, repo repositories.ProductRepository) {
	ctx := context.Background()
	first := newProduct("First", 1)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := newProduct("Second", 1)
	require.NoError(t, repo.Save(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}
