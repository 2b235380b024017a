package main

import (
	"context"
	"log"
	"time"

	"kitchen-stock/config"
	httpapi "kitchen-stock/kitchen-svc/internal/api/http"
	"kitchen-stock/kitchen-svc/internal/service"
	"kitchen-stock/kitchen-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare schema:", err)
	}
	cancel()

	pricing := config.LoadPricing()
	orderConfig := service.OrderConfig{
		VATRate:            pricing.VATRate,
		LowStockMultiplier: pricing.LowStockMultiplier,
	}
	log.Printf("[kitchen-svc] VAT %s, low-stock multiplier %s", pricing.VATRate, pricing.LowStockMultiplier)

	writer := config.NewKafkaWriter(config.OrderEventsTopic)
	defer writer.Close()

	qr := service.DefaultQRGenerator{BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080")}

	handler := httpapi.NewHandler(
		service.NewIngredientService(repo, orderConfig),
		service.NewDishService(repo, orderConfig),
		service.NewOrderService(repo, qr, storage.NewKafkaPublisher(writer), orderConfig),
		service.NewReportService(repo),
	)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8081"), httpapi.NewRouter(handler))
}
