package main

import (
	httpapi "kitchen-stock/analytics-svc/internal/api/http"
	"kitchen-stock/analytics-svc/internal/service"
	"kitchen-stock/config"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	pricing := config.LoadPricing()
	analytics := service.NewAnalyticsService(db, rdb, pricing.LowStockMultiplier)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8083"), httpapi.NewRouter(httpapi.NewHandler(analytics)))
}
