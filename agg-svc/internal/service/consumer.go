package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"kitchen-stock/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

const defaultRetryDelay = time.Second

type Consumer struct {
	Reader     MessageReader
	Store      StoreInterface
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader:     reader,
		Store:      store,
		RetryDelay: defaultRetryDelay,
	}
}

func (c *Consumer) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.RetryDelay):
		return nil
	}
}

// Start consumes order events until ctx is cancelled. A message's offset is
// committed only after it has been recorded; store failures retry the same
// message. Undecodable messages are logged and committed.
func (c *Consumer) Start(ctx context.Context) error {
	log.Println("[agg-svc] starting order events consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[agg-svc] error fetching message: %v", err)
			if err := c.wait(ctx); err != nil {
				return err
			}
			continue
		}

		if err := c.handle(ctx, message); err != nil {
			return err
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[agg-svc] error committing offset %d: %v", message.Offset, err)
		}
	}
}

// handle returns only when the message is recorded, skipped, or ctx ends.
func (c *Consumer) handle(ctx context.Context, message kafka.Message) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Printf("[agg-svc] error unmarshaling message at offset %d: %v", message.Offset, err)
		return nil
	}

	for {
		err := c.ProcessOrder(ctx, event)
		if err == nil {
			return nil
		}
		log.Printf("[agg-svc] error processing order %d, retrying: %v", event.OrderID, err)
		if err := c.wait(ctx); err != nil {
			return err
		}
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) error {
	if event.Type != domain.EventOrderPlaced {
		return nil
	}

	recorded, err := c.Store.RecordOrder(ctx, event)
	if err != nil {
		return err
	}
	if !recorded {
		log.Printf("[agg-svc] order %d already processed, skipping", event.OrderID)
		return nil
	}

	log.Printf("[agg-svc] order %d aggregated: %d item(s), total %s", event.OrderID, len(event.Items), event.Total.StringFixed(2))
	return nil
}
