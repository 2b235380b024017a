package main

import (
	"log"
	"net/http"
	"time"

	"kitchen-stock/api-gateway/internal/gateway"
	"kitchen-stock/config"
)

func main() {
	config.LoadEnv()

	cfg := gateway.Config{
		KitchenSvcURL:   config.GetEnv("KITCHEN_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: config.GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}

	client := &http.Client{Timeout: config.GetDurationEnv("UPSTREAM_TIMEOUT", 15*time.Second)}
	gw := gateway.NewGateway(cfg, client)

	handler := config.NewCORS().Handler(gw.SetupRoutes())

	addr := ":" + config.GetEnv("PORT", "8080")
	log.Printf("[api-gateway] API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
