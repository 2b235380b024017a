package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "order_placed"

// OrderEvent is the order_placed message published by kitchen-svc.
type OrderEvent struct {
	Type      string          `json:"type"`
	OrderID   int             `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	Items     []EventItem     `json:"items"`
	Timestamp time.Time       `json:"timestamp"`
}

type EventItem struct {
	DishID   int             `json:"dish_id"`
	DishName string          `json:"dish_name"`
	Quantity int             `json:"quantity"`
	LineCost decimal.Decimal `json:"line_cost"`
}
