package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ingredients (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		unit TEXT NOT NULL,
		quantity NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		unit_price NUMERIC(14,4) NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dish_ingredients (
		dish_id INTEGER NOT NULL REFERENCES dishes (id) ON DELETE CASCADE,
		ingredient_id INTEGER NOT NULL REFERENCES ingredients (id) ON DELETE RESTRICT,
		position INTEGER NOT NULL DEFAULT 0,
		quantity NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
		unit TEXT NOT NULL,
		PRIMARY KEY (dish_id, ingredient_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status TEXT NOT NULL DEFAULT 'completed',
		subtotal NUMERIC NOT NULL,
		vat_rate NUMERIC NOT NULL,
		vat_amount NUMERIC NOT NULL,
		total NUMERIC NOT NULL,
		qr_code BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		dish_id INTEGER NOT NULL REFERENCES dishes (id) ON DELETE RESTRICT,
		position INTEGER NOT NULL DEFAULT 0,
		dish_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC NOT NULL,
		line_cost NUMERIC NOT NULL
	)`,
	"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)",
	"CREATE INDEX IF NOT EXISTS idx_order_items_dish_id ON order_items (dish_id)",
	"CREATE INDEX IF NOT EXISTS idx_dish_ingredients_ingredient_id ON dish_ingredients (ingredient_id)",
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, ch := range stmt {
		if ch == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
