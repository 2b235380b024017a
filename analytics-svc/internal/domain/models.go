package domain

import "github.com/shopspring/decimal"

// DishSales is one row of a best-sellers ranking, counted in portions.
type DishSales struct {
	DishID   int    `json:"dish_id"`
	DishName string `json:"dish_name"`
	Portions int64  `json:"portions"`
}

type Revenue struct {
	Date     string          `json:"date"`
	Orders   int64           `json:"orders"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// LowStockItem is an ingredient whose current stock is below its alert
// threshold.
type LowStockItem struct {
	IngredientID int             `json:"ingredient_id"`
	Name         string          `json:"ingredient"`
	Unit         string          `json:"unit"`
	Remaining    decimal.Decimal `json:"remaining"`
	Threshold    decimal.Decimal `json:"threshold"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}
