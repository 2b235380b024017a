package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	DefaultVATRate            = "0.21"
	DefaultLowStockMultiplier = "3"

	OrderEventsTopic = "kitchen.orders"
)

// Pricing holds the billing and stock-warning knobs of the order processor.
type Pricing struct {
	VATRate            decimal.Decimal
	LowStockMultiplier decimal.Decimal
}

// LoadEnv loads a .env file from the working directory when one exists.
// A missing file is not an error: containers get their env from the runtime.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("config: invalid duration %s=%q, using %s", key, raw, defaultValue)
	return defaultValue
}

// LoadPricing reads VAT_RATE and LOW_STOCK_MULTIPLIER. Values that do not
// parse or are negative fall back to the defaults.
func LoadPricing() Pricing {
	return Pricing{
		VATRate:            decimalEnv("VAT_RATE", DefaultVATRate),
		LowStockMultiplier: decimalEnv("LOW_STOCK_MULTIPLIER", DefaultLowStockMultiplier),
	}
}

func decimalEnv(key, defaultValue string) decimal.Decimal {
	fallback := decimal.RequireFromString(defaultValue)
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		log.Printf("config: invalid %s=%q, using %s", key, raw, defaultValue)
		return fallback
	}
	return value
}

func PostgresDSN() string {
	return "host=" + GetEnv("DB_HOST", "localhost") +
		" port=" + GetEnv("DB_PORT", "5432") +
		" user=" + GetEnv("DB_USER", "postgres") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "kitchen") +
		" sslmode=" + GetEnv("DB_SSLMODE", "disable")
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func KafkaBroker() string {
	return GetEnv("KAFKA_BROKER", "localhost:9092")
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{KafkaBroker()},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(KafkaBroker()),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewCORS allows any origin and header for every method the APIs route.
func NewCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
}
