package service

import (
	"context"

	"kitchen-stock/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	TopToday(ctx context.Context, limit int) ([]domain.DishSales, error)
	TopAllTime(ctx context.Context, limit int) ([]domain.DishSales, error)
	Revenue(ctx context.Context, day string) (*domain.Revenue, error)
	LowStock(ctx context.Context) ([]domain.LowStockItem, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
