package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, placed domain.PlacedOrder) error {
	payload, err := json.Marshal(domain.NewOrderPlacedEvent(placed, time.Now()))
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(placed.Order.ID)),
		Value: payload,
	})
}
