package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "order_placed"

type EventItem struct {
	DishID   int             `json:"dish_id"`
	DishName string          `json:"dish_name"`
	Quantity int             `json:"quantity"`
	LineCost decimal.Decimal `json:"line_cost"`
}

// OrderEvent is the message published on the order events topic.
type OrderEvent struct {
	Type      string          `json:"type"`
	OrderID   int             `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	Items     []EventItem     `json:"items"`
	Stock     []StockChange   `json:"stock"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewOrderPlacedEvent(placed PlacedOrder, now time.Time) OrderEvent {
	items := make([]EventItem, 0, len(placed.Order.Items))
	for _, item := range placed.Order.Items {
		items = append(items, EventItem{
			DishID:   item.DishID,
			DishName: item.DishName,
			Quantity: item.Quantity,
			LineCost: item.LineCost,
		})
	}
	return OrderEvent{
		Type:      EventOrderPlaced,
		OrderID:   placed.Order.ID,
		CreatedAt: placed.Order.CreatedAt,
		Subtotal:  placed.Order.Subtotal,
		Total:     placed.Order.Total,
		Items:     items,
		Stock:     placed.Stock,
		Timestamp: now,
	}
}
