package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"kitchen-stock/kitchen-svc/internal/domain"
)

func insertComponents(ctx context.Context, tx *sql.Tx, dish *domain.Dish) error {
	for i, c := range dish.Components {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dish_ingredients (dish_id, ingredient_id, position, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			dish.ID, c.IngredientID, i, c.Quantity, c.Unit); err != nil {
			return translate(err, "ingredient "+strconv.Itoa(c.IngredientID)+" of "+dish.Name)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		"INSERT INTO dishes (name) VALUES ($1) RETURNING id, created_at, updated_at", dish.Name).
		Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
		return translate(err, "dish "+dish.Name)
	}
	if err := insertComponents(ctx, tx, dish); err != nil {
		return err
	}
	return tx.Commit()
}

// loadComponents fills the recipes of the given dishes, ordered as entered.
func loadComponents(ctx context.Context, q queryer, dishes map[int]*domain.Dish) error {
	if len(dishes) == 0 {
		return nil
	}
	ids := make([]int, 0, len(dishes))
	for id := range dishes {
		ids = append(ids, id)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT di.dish_id, di.ingredient_id, i.name, di.quantity, di.unit, i.unit_price, i.quantity
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = ANY($1)
		ORDER BY di.dish_id, di.position`, idArray(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dishID int
		var c domain.DishComponent
		if err := rows.Scan(&dishID, &c.IngredientID, &c.IngredientName, &c.Quantity, &c.Unit, &c.UnitPrice, &c.InStock); err != nil {
			return err
		}
		if dish, ok := dishes[dishID]; ok {
			dish.Components = append(dish.Components, c)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	var dish domain.Dish
	if err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM dishes WHERE id = $1", id).
		Scan(&dish.ID, &dish.Name, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
		return nil, translate(err, "dish "+strconv.Itoa(id))
	}
	if err := loadComponents(ctx, r.DB, map[int]*domain.Dish{dish.ID: &dish}); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *PostgresRepository) ListDishes(ctx context.Context, nameLike string) ([]domain.Dish, error) {
	var where whereBuilder
	if nameLike != "" {
		where.add("name ILIKE ?", containsPattern(nameLike))
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM dishes"+where.String()+" ORDER BY name", where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int]*domain.Dish, len(dishes))
	for i := range dishes {
		byID[dishes[i].ID] = &dishes[i]
	}
	if err := loadComponents(ctx, r.DB, byID); err != nil {
		return nil, err
	}
	return dishes, nil
}

// UpdateDish renames the dish and replaces its whole recipe.
func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"UPDATE dishes SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING created_at, updated_at",
		dish.Name, dish.ID).Scan(&dish.CreatedAt, &dish.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("dish %d", dish.ID)
	}
	if err != nil {
		return translate(err, "dish "+dish.Name)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM dish_ingredients WHERE dish_id = $1", dish.ID); err != nil {
		return err
	}
	if err := insertComponents(ctx, tx, dish); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM dishes WHERE id = $1", id)
	if err != nil {
		return 0, translate(err, "dish "+strconv.Itoa(id))
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CountOrdersWithDish(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT order_id) FROM order_items WHERE dish_id = $1", id).Scan(&count)
	return count, err
}
