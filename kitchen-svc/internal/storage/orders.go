package storage

import (
	"context"
	"database/sql"
	"strconv"

	"kitchen-stock/kitchen-svc/internal/domain"
	"kitchen-stock/kitchen-svc/internal/service"

	"github.com/shopspring/decimal"
)

// InTx runs fn inside one database transaction and commits only when fn
// returns nil.
func (r *PostgresRepository) InTx(ctx context.Context, fn func(tx service.OrderTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&orderTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type orderTx struct {
	tx *sql.Tx
}

var _ service.OrderTx = (*orderTx)(nil)

// LoadDishes share-locks the dish rows so their recipes cannot be changed or
// deleted while the order is being placed.
func (o *orderTx) LoadDishes(ctx context.Context, ids []int) (map[int]domain.Dish, error) {
	rows, err := o.tx.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM dishes WHERE id = ANY($1) ORDER BY id FOR SHARE", idArray(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*domain.Dish, len(ids))
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		byID[dish.ID] = &dish
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadComponents(ctx, o.tx, byID); err != nil {
		return nil, err
	}
	dishes := make(map[int]domain.Dish, len(byID))
	for id, dish := range byID {
		dishes[id] = *dish
	}
	return dishes, nil
}

// LockIngredients takes row locks in ascending id order.
func (o *orderTx) LockIngredients(ctx context.Context, ids []int) (map[int]domain.Ingredient, error) {
	return ingredientsByID(ctx, o.tx, ids, true)
}

func (o *orderTx) SetStock(ctx context.Context, ingredientID int, quantity decimal.Decimal) error {
	result, err := o.tx.ExecContext(ctx,
		"UPDATE ingredients SET quantity = $1, updated_at = NOW() WHERE id = $2", quantity, ingredientID)
	if err != nil {
		return translate(err, "ingredient "+strconv.Itoa(ingredientID))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundf("ingredient %d", ingredientID)
	}
	return nil
}

func (o *orderTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	if err := o.tx.QueryRowContext(ctx, `
		INSERT INTO orders (subtotal, vat_rate, vat_amount, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		order.Subtotal, order.VATRate, order.VATAmount, order.Total, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i, item := range order.Items {
		if _, err := o.tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, dish_id, position, dish_name, quantity, unit_price, line_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID, item.DishID, i, item.DishName, item.Quantity, item.UnitPrice, item.LineCost); err != nil {
			return translate(err, "item "+item.DishName)
		}
	}
	return nil
}

const orderColumns = "id, created_at, status, subtotal, vat_rate, vat_amount, total"

func scanOrder(scan func(dest ...any) error) (domain.Order, error) {
	var order domain.Order
	err := scan(&order.ID, &order.CreatedAt, &order.Status, &order.Subtotal, &order.VATRate, &order.VATAmount, &order.Total)
	return order, err
}

func (r *PostgresRepository) loadItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[int]int, len(orders))
	ids := make([]int, 0, len(orders))
	for i := range orders {
		orders[i].Items = []domain.OrderItem{}
		index[orders[i].ID] = i
		ids = append(ids, orders[i].ID)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, dish_id, dish_name, quantity, unit_price, line_cost
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, idArray(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.DishID, &item.DishName, &item.Quantity, &item.UnitPrice, &item.LineCost); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id).Scan)
	if err != nil {
		return nil, translate(err, "order "+strconv.Itoa(id))
	}
	orders := []domain.Order{order}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// QueryOrders matches the dish name against the name captured on the order,
// so renaming a dish does not rewrite history.
func (r *PostgresRepository) QueryOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var where whereBuilder
	if filter.From != nil {
		where.add("o.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		where.add("o.created_at <= ?", *filter.To)
	}
	if filter.DishName != "" {
		where.add("EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.dish_name ILIKE ?)",
			containsPattern(filter.DishName))
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders o"+where.String()+" ORDER BY o.created_at, o.id", where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode); err != nil {
		return nil, translate(err, "order "+strconv.Itoa(orderID))
	}
	return qrCode, nil
}
