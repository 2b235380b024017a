package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"kitchen-stock/agg-svc/internal/domain"
	"kitchen-stock/config"

	"github.com/redis/go-redis/v9"
)

const (
	dailyRetention     = 90 * 24 * time.Hour
	processedRetention = 7 * 24 * time.Hour
	maxWatchRetries    = 3
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

var errAlreadyProcessed = errors.New("order already processed")

// RecordOrder adds the order to the per-day and all-time dish rankings and
// to the revenue of its day, and marks it processed, all in one MULTI. It
// returns false without writing anything when the order was seen before.
func (s *Store) RecordOrder(ctx context.Context, event domain.OrderEvent) (bool, error) {
	processedKey := config.ProcessedOrderKey(event.OrderID)
	day := config.Day(event.CreatedAt)
	dailyKey := config.DailySalesKey(day)
	revenueKey := config.DailyRevenueKey(day)

	record := func(tx *redis.Tx) error {
		seen, err := tx.Exists(ctx, processedKey).Result()
		if err != nil {
			return err
		}
		if seen > 0 {
			return errAlreadyProcessed
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, processedKey, time.Now().Unix(), processedRetention)
			for _, item := range event.Items {
				member := strconv.Itoa(item.DishID)
				pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), member)
				pipe.ZIncrBy(ctx, config.AllTimeSalesKey, float64(item.Quantity), member)
				pipe.HSet(ctx, config.DishNamesKey, member, item.DishName)
			}
			pipe.Expire(ctx, dailyKey, dailyRetention)

			pipe.HIncrByFloat(ctx, revenueKey, "total", event.Total.InexactFloat64())
			pipe.HIncrByFloat(ctx, revenueKey, "subtotal", event.Subtotal.InexactFloat64())
			pipe.HIncrBy(ctx, revenueKey, "orders", 1)
			pipe.Expire(ctx, revenueKey, dailyRetention)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < maxWatchRetries; i++ {
		err = s.rdb.Watch(ctx, record, processedKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	switch {
	case errors.Is(err, errAlreadyProcessed):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
