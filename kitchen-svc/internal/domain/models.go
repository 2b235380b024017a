package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Units accepted for ingredients and dish components.
var AllowedUnits = []string{"g", "ml", "pc"}

func IsAllowedUnit(unit string) bool {
	for _, u := range AllowedUnits {
		if u == unit {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DishComponent is one ingredient line of a dish recipe. Quantity is the
// amount consumed by a single portion. IngredientName, UnitPrice and InStock
// are read-side fields filled from the ingredient row.
type DishComponent struct {
	IngredientID   int             `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	InStock        decimal.Decimal `json:"in_stock"`
}

type Dish struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Components []DishComponent `json:"ingredients"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price_with_vat"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// UnitCost sums quantity × unit price over the components, using whatever
// prices the components currently carry.
func (d Dish) UnitCost() decimal.Decimal {
	cost := decimal.Zero
	for _, c := range d.Components {
		cost = cost.Add(c.Quantity.Mul(c.UnitPrice))
	}
	return cost
}

const OrderStatusCompleted = "completed"

type Order struct {
	ID        int             `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Status    string          `json:"status"`
	Items     []OrderItem     `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Total     decimal.Decimal `json:"total"`
	QRCode    string          `json:"qr_code,omitempty"`
}

// OrderItem keeps the dish name and unit price as they were when the order
// was placed.
type OrderItem struct {
	DishID    int             `json:"dish_id"`
	DishName  string          `json:"dish_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineCost  decimal.Decimal `json:"line_cost"`
}

// OrderLine is one requested (dish, quantity) pair.
type OrderLine struct {
	DishID   int `json:"dish_id"`
	Quantity int `json:"quantity"`
}

// StockChange records what an order did to one ingredient.
type StockChange struct {
	IngredientID int             `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Consumed     decimal.Decimal `json:"consumed"`
	Remaining    decimal.Decimal `json:"remaining"`
	Threshold    decimal.Decimal `json:"threshold"`
	LowStock     bool            `json:"low_stock"`
}

type LowStockWarning struct {
	IngredientID int             `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Remaining    decimal.Decimal `json:"remaining"`
	Threshold    decimal.Decimal `json:"threshold"`
}

type PlacedOrder struct {
	Order    Order             `json:"order"`
	Warnings []LowStockWarning `json:"low_stock_warnings"`
	Stock    []StockChange     `json:"-"`
}

// LowStockAlert is the catalogue-wide view: stock below multiplier × the
// largest per-portion requirement of any dish using the ingredient.
type LowStockAlert struct {
	IngredientID int             `json:"ingredient_id"`
	Name         string          `json:"ingredient"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	Threshold    decimal.Decimal `json:"threshold"`
}

const (
	CompareGreaterOrEqual = "ge"
	CompareLessOrEqual    = "le"
)

type IngredientFilter struct {
	Name     string
	Quantity *decimal.Decimal
	Op       string
}

type DishFilter struct {
	Name  string
	Price *decimal.Decimal
	Op    string
}

// OrderFilter bounds are inclusive; nil means unbounded.
type OrderFilter struct {
	From     *time.Time
	To       *time.Time
	DishName string
}
