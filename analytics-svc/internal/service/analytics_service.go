package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"kitchen-stock/analytics-svc/internal/domain"
	"kitchen-stock/config"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type AnalyticsService struct {
	db         *sql.DB
	rdb        *redis.Client
	multiplier decimal.Decimal
	now        func() time.Time
}

// NewAnalyticsService reads the aggregator's Redis models and falls back to
// PostgreSQL when they are missing. Low stock always comes from PostgreSQL,
// using multiplier.
func NewAnalyticsService(db *sql.DB, rdb *redis.Client, multiplier decimal.Decimal) *AnalyticsService {
	return &AnalyticsService{
		db:         db,
		rdb:        rdb,
		multiplier: multiplier,
		now:        time.Now,
	}
}

// SetClock replaces the time source used to pick "today".
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

func dayBounds(day string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(config.DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.DishSales, error) {
	day := config.Day(s.now())
	top, err := s.ranking(ctx, config.DailySalesKey(day), limit)
	if err != nil || len(top) == 0 {
		if err != nil {
			log.Printf("[analytics-svc] redis ranking for %s unavailable: %v", day, err)
		}
		start, end, _ := dayBounds(day)
		return s.topFromDB(ctx, &start, &end, limit)
	}
	return top, nil
}

func (s *AnalyticsService) TopAllTime(ctx context.Context, limit int) ([]domain.DishSales, error) {
	top, err := s.ranking(ctx, config.AllTimeSalesKey, limit)
	if err != nil || len(top) == 0 {
		if err != nil {
			log.Printf("[analytics-svc] redis all-time ranking unavailable: %v", err)
		}
		return s.topFromDB(ctx, nil, nil, limit)
	}
	return top, nil
}

func (s *AnalyticsService) ranking(ctx context.Context, key string, limit int) ([]domain.DishSales, error) {
	members, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil || len(members) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.Member.(string))
	}
	names, err := s.rdb.HMGet(ctx, config.DishNamesKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	top := make([]domain.DishSales, 0, len(members))
	for i, m := range members {
		dishID, err := strconv.Atoi(ids[i])
		if err != nil {
			continue
		}
		entry := domain.DishSales{DishID: dishID, Portions: int64(m.Score)}
		if name, ok := names[i].(string); ok {
			entry.DishName = name
		}
		top = append(top, entry)
	}
	return top, nil
}

// topFromDB ranks dishes by portions sold, optionally within [from, to).
func (s *AnalyticsService) topFromDB(ctx context.Context, from, to *time.Time, limit int) ([]domain.DishSales, error) {
	query := `
		SELECT oi.dish_id, MAX(oi.dish_name), SUM(oi.quantity) AS portions
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id`
	args := []interface{}{limit}
	if from != nil && to != nil {
		query += " WHERE o.created_at >= $2 AND o.created_at < $3"
		args = append(args, *from, *to)
	}
	query += `
		GROUP BY oi.dish_id
		ORDER BY portions DESC, oi.dish_id
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []domain.DishSales{}
	for rows.Next() {
		var d domain.DishSales
		if err := rows.Scan(&d.DishID, &d.DishName, &d.Portions); err != nil {
			return nil, err
		}
		top = append(top, d)
	}
	return top, rows.Err()
}

func (s *AnalyticsService) Revenue(ctx context.Context, day string) (*domain.Revenue, error) {
	start, end, err := dayBounds(day)
	if err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}

	stats, err := s.rdb.HGetAll(ctx, config.DailyRevenueKey(day)).Result()
	if err == nil && len(stats) > 0 {
		revenue := &domain.Revenue{Date: day}
		revenue.Orders, _ = strconv.ParseInt(stats["orders"], 10, 64)
		if v, err := decimal.NewFromString(stats["subtotal"]); err == nil {
			revenue.Subtotal = v.Round(2)
		}
		if v, err := decimal.NewFromString(stats["total"]); err == nil {
			revenue.Total = v.Round(2)
		}
		return revenue, nil
	}
	if err != nil {
		log.Printf("[analytics-svc] redis revenue for %s unavailable: %v", day, err)
	}

	revenue := &domain.Revenue{Date: day}
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(subtotal), 0), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`, start, end).
		Scan(&revenue.Orders, &revenue.Subtotal, &revenue.Total)
	if err != nil {
		return nil, err
	}
	revenue.Subtotal = revenue.Subtotal.Round(2)
	revenue.Total = revenue.Total.Round(2)
	return revenue, nil
}

// LowStock recomputes the alert list from the current ingredient rows, so a
// restock shows up immediately. An ingredient is low when its stock cannot
// cover multiplier portions of the most demanding dish that uses it.
func (s *AnalyticsService) LowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.unit, i.quantity, MAX(di.quantity) * $1 AS threshold, i.updated_at
		FROM ingredients i
		JOIN dish_ingredients di ON di.ingredient_id = i.id
		GROUP BY i.id, i.name, i.unit, i.quantity, i.updated_at
		HAVING i.quantity < MAX(di.quantity) * $1
		ORDER BY i.name`, s.multiplier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.LowStockItem{}
	for rows.Next() {
		var item domain.LowStockItem
		var updated time.Time
		if err := rows.Scan(&item.IngredientID, &item.Name, &item.Unit, &item.Remaining, &item.Threshold, &updated); err != nil {
			return nil, err
		}
		item.UpdatedAt = updated.UTC().Format(time.RFC3339)
		items = append(items, item)
	}
	return items, rows.Err()
}
