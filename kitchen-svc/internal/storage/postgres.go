package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"kitchen-stock/kitchen-svc/internal/domain"
	"kitchen-stock/kitchen-svc/internal/service"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// translate maps driver errors onto the domain taxonomy. what names the
// record for the message.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("%s", what)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return domain.Validationf("%s already exists", what)
		case "23503":
			return domain.Conflictf("%s is referenced by other records", what)
		case "23514":
			return domain.Validationf("%s violates %s", what, pqErr.Constraint)
		case "22003":
			return domain.Validationf("%s has a value out of range", what)
		}
	}
	return err
}

func idArray(ids []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	return arr
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(b.args))))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (r *PostgresRepository) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO ingredients (name, unit, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		ing.Name, ing.Unit, ing.Quantity, ing.UnitPrice).
		Scan(&ing.ID, &ing.CreatedAt, &ing.UpdatedAt)
	return translate(err, "ingredient "+ing.Name)
}

const ingredientColumns = "id, name, unit, quantity, unit_price, created_at, updated_at"

func scanIngredient(scan func(dest ...any) error) (domain.Ingredient, error) {
	var ing domain.Ingredient
	err := scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Quantity, &ing.UnitPrice, &ing.CreatedAt, &ing.UpdatedAt)
	return ing, err
}

func (r *PostgresRepository) GetIngredient(ctx context.Context, id int) (*domain.Ingredient, error) {
	ing, err := scanIngredient(r.DB.QueryRowContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients WHERE id = $1", id).Scan)
	if err != nil {
		return nil, translate(err, "ingredient "+strconv.Itoa(id))
	}
	return &ing, nil
}

func (r *PostgresRepository) ListIngredients(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error) {
	var where whereBuilder
	if filter.Name != "" {
		where.add("name ILIKE ?", containsPattern(filter.Name))
	}
	if filter.Quantity != nil {
		if filter.Op == domain.CompareLessOrEqual {
			where.add("quantity <= ?", *filter.Quantity)
		} else {
			where.add("quantity >= ?", *filter.Quantity)
		}
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients"+where.String()+" ORDER BY name", where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows.Scan)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *PostgresRepository) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE ingredients
		SET name = $1, unit = $2, quantity = $3, unit_price = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`,
		ing.Name, ing.Unit, ing.Quantity, ing.UnitPrice, ing.ID).
		Scan(&ing.CreatedAt, &ing.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("ingredient %d", ing.ID)
	}
	return translate(err, "ingredient "+ing.Name)
}

func (r *PostgresRepository) DeleteIngredient(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM ingredients WHERE id = $1", id)
	if err != nil {
		return 0, translate(err, "ingredient "+strconv.Itoa(id))
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CountDishesUsingIngredient(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT dish_id) FROM dish_ingredients WHERE ingredient_id = $1", id).Scan(&count)
	return count, err
}

// ListComponentStock returns every recipe line joined with the current
// stock of its ingredient.
func (r *PostgresRepository) ListComponentStock(ctx context.Context) ([]domain.DishComponent, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT di.ingredient_id, i.name, di.quantity, i.unit, i.unit_price, i.quantity
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		ORDER BY i.name, di.dish_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []domain.DishComponent
	for rows.Next() {
		var c domain.DishComponent
		if err := rows.Scan(&c.IngredientID, &c.IngredientName, &c.Quantity, &c.Unit, &c.UnitPrice, &c.InStock); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *PostgresRepository) IngredientsByID(ctx context.Context, ids []int) (map[int]domain.Ingredient, error) {
	return ingredientsByID(ctx, r.DB, ids, false)
}

func ingredientsByID(ctx context.Context, q queryer, ids []int, forUpdate bool) (map[int]domain.Ingredient, error) {
	query := "SELECT " + ingredientColumns + " FROM ingredients WHERE id = ANY($1) ORDER BY id"
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := q.QueryContext(ctx, query, idArray(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]domain.Ingredient, len(ids))
	for rows.Next() {
		ing, err := scanIngredient(rows.Scan)
		if err != nil {
			return nil, err
		}
		result[ing.ID] = ing
	}
	return result, rows.Err()
}

var (
	_ service.IngredientRepository = (*PostgresRepository)(nil)
	_ service.DishRepository       = (*PostgresRepository)(nil)
	_ service.OrderRepository      = (*PostgresRepository)(nil)
	_ service.OrderPublisher       = (*KafkaPublisher)(nil)
)
