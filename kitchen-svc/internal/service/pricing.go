package service

import (
	"sort"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	DefaultVATRate            = decimal.RequireFromString("0.21")
	DefaultLowStockMultiplier = decimal.NewFromInt(3)
)

// OrderConfig carries the billing and low-stock parameters of the order
// processor.
type OrderConfig struct {
	VATRate            decimal.Decimal
	LowStockMultiplier decimal.Decimal
}

func DefaultOrderConfig() OrderConfig {
	return OrderConfig{VATRate: DefaultVATRate, LowStockMultiplier: DefaultLowStockMultiplier}
}

// withDefaults turns the zero OrderConfig into the default one. A config
// with any field set is used as given.
func (c OrderConfig) withDefaults() OrderConfig {
	if c.VATRate.IsZero() && c.LowStockMultiplier.IsZero() {
		return DefaultOrderConfig()
	}
	return c
}

// Requirements sums, per ingredient, what all lines of an order consume.
// Every dish referenced by lines must be present in dishes.
func Requirements(lines []domain.OrderLine, dishes map[int]domain.Dish) map[int]decimal.Decimal {
	needs := make(map[int]decimal.Decimal)
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, c := range dishes[line.DishID].Components {
			needs[c.IngredientID] = needs[c.IngredientID].Add(c.Quantity.Mul(qty))
		}
	}
	return needs
}

func sortedIDs(needs map[int]decimal.Decimal) []int {
	ids := make([]int, 0, len(needs))
	for id := range needs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// BuildOrder checks stock, prices every line at the given ingredient prices
// and works out the post-order stock of each touched ingredient. It does not
// mutate its inputs. When any ingredient is short it returns an
// *domain.InsufficientStockError listing all of them.
func BuildOrder(lines []domain.OrderLine, dishes map[int]domain.Dish, stock map[int]domain.Ingredient, config OrderConfig) (*domain.PlacedOrder, error) {
	config = config.withDefaults()
	needs := Requirements(lines, dishes)
	ids := sortedIDs(needs)

	var shortfalls []domain.Shortfall
	for _, id := range ids {
		ing, ok := stock[id]
		if !ok {
			return nil, domain.NotFoundf("ingredient %d", id)
		}
		if ing.Quantity.LessThan(needs[id]) {
			shortfalls = append(shortfalls, domain.Shortfall{
				IngredientID: id,
				Name:         ing.Name,
				Unit:         ing.Unit,
				Required:     needs[id],
				Available:    ing.Quantity,
				Missing:      needs[id].Sub(ing.Quantity),
			})
		}
	}
	if len(shortfalls) > 0 {
		return nil, &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	order := domain.Order{
		Status:  domain.OrderStatusCompleted,
		VATRate: config.VATRate,
		Items:   make([]domain.OrderItem, 0, len(lines)),
	}
	subtotal := decimal.Zero
	for _, line := range lines {
		dish := dishes[line.DishID]
		unitPrice := decimal.Zero
		for _, c := range dish.Components {
			unitPrice = unitPrice.Add(c.Quantity.Mul(stock[c.IngredientID].UnitPrice))
		}
		lineCost := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineCost)
		order.Items = append(order.Items, domain.OrderItem{
			DishID:    dish.ID,
			DishName:  dish.Name,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			LineCost:  lineCost,
		})
	}
	order.Subtotal = subtotal
	order.VATAmount = subtotal.Mul(config.VATRate)
	order.Total = subtotal.Add(order.VATAmount)

	placed := &domain.PlacedOrder{
		Order:    order,
		Warnings: []domain.LowStockWarning{},
		Stock:    make([]domain.StockChange, 0, len(ids)),
	}
	for _, id := range ids {
		ing := stock[id]
		remaining := ing.Quantity.Sub(needs[id])
		threshold := needs[id].Mul(config.LowStockMultiplier)
		low := remaining.LessThan(threshold)
		placed.Stock = append(placed.Stock, domain.StockChange{
			IngredientID: id,
			Name:         ing.Name,
			Unit:         ing.Unit,
			Consumed:     needs[id],
			Remaining:    remaining,
			Threshold:    threshold,
			LowStock:     low,
		})
		if low {
			placed.Warnings = append(placed.Warnings, domain.LowStockWarning{
				IngredientID: id,
				Name:         ing.Name,
				Unit:         ing.Unit,
				Remaining:    remaining,
				Threshold:    threshold,
			})
		}
	}
	return placed, nil
}
