package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"kitchen-stock/agg-svc/internal/service"
	"kitchen-stock/agg-svc/internal/storage"
	"kitchen-stock/config"
)

func main() {
	config.LoadEnv()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(config.OrderEventsTopic, config.GetEnv("KAFKA_GROUP_ID", "agg-svc-consumer"))
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb))
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[agg-svc] consumer stopped: %v", err)
	}
	log.Println("[agg-svc] shut down")
}
