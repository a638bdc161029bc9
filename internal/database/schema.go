package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AUTOINCREMENT and sequences both guarantee ids are never handed out twice.
var productsDDL = map[string]string{
	"sqlite": `CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(100) NOT NULL,
	description VARCHAR(500),
	price REAL NOT NULL,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	category VARCHAR(100),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`,
	"postgres": `CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	description VARCHAR(500),
	price DOUBLE PRECISION NOT NULL,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	category VARCHAR(100),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
}

// EnsureSchema creates the products table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	dialect := db.Dialector.Name()
	ddl, ok := productsDDL[dialect]
	if !ok {
		return fmt.Errorf("no products schema for dialect %q", dialect)
	}
	if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}
