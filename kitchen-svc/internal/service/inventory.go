package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type IngredientService struct {
	repo   IngredientRepository
	config OrderConfig
}

func NewIngredientService(repo IngredientRepository, config OrderConfig) *IngredientService {
	return &IngredientService{repo: repo, config: config.withDefaults()}
}

// Column limits of the ingredient and recipe tables: NUMERIC(14,3) for
// quantities and NUMERIC(14,4) for unit prices.
const (
	quantityScale = 3
	priceScale    = 4
)

var (
	maxQuantity = decimal.New(1, 14-quantityScale)
	maxPrice    = decimal.New(1, 14-priceScale)
)

// checkStored rejects values the column would round or could not hold.
func checkStored(what string, value decimal.Decimal, scale int32, limit decimal.Decimal) error {
	if !value.Equal(value.Truncate(scale)) {
		return domain.Validationf("%s allows at most %d decimal places", what, scale)
	}
	if value.Abs().GreaterThanOrEqual(limit) {
		return domain.Validationf("%s must be below %s", what, limit.String())
	}
	return nil
}

func validateIngredient(ing *domain.Ingredient) error {
	ing.Name = strings.TrimSpace(ing.Name)
	ing.Unit = strings.TrimSpace(ing.Unit)
	if ing.Name == "" {
		return domain.Validationf("ingredient name is required")
	}
	if !domain.IsAllowedUnit(ing.Unit) {
		return domain.Validationf("unit must be one of %s", strings.Join(domain.AllowedUnits, ", "))
	}
	if ing.Quantity.IsNegative() {
		return domain.Validationf("quantity of %s cannot be negative", ing.Name)
	}
	if ing.UnitPrice.IsNegative() {
		return domain.Validationf("unit price of %s cannot be negative", ing.Name)
	}
	if err := checkStored("quantity of "+ing.Name, ing.Quantity, quantityScale, maxQuantity); err != nil {
		return err
	}
	return checkStored("unit price of "+ing.Name, ing.UnitPrice, priceScale, maxPrice)
}

func (s *IngredientService) Create(ctx context.Context, ing *domain.Ingredient) error {
	if err := validateIngredient(ing); err != nil {
		return err
	}
	return s.repo.CreateIngredient(ctx, ing)
}

func (s *IngredientService) Get(ctx context.Context, id int) (*domain.Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *IngredientService) List(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	switch filter.Op {
	case "":
		filter.Op = domain.CompareGreaterOrEqual
	case domain.CompareGreaterOrEqual, domain.CompareLessOrEqual:
	default:
		return nil, domain.Validationf("unknown comparison %q", filter.Op)
	}
	return s.repo.ListIngredients(ctx, filter)
}

// Update rewrites name, unit, stock and price. The unit cannot change while
// dishes still measure the ingredient in the old one.
func (s *IngredientService) Update(ctx context.Context, ing *domain.Ingredient) error {
	if err := validateIngredient(ing); err != nil {
		return err
	}
	current, err := s.repo.GetIngredient(ctx, ing.ID)
	if err != nil {
		return err
	}
	if current.Unit != ing.Unit {
		used, err := s.repo.CountDishesUsingIngredient(ctx, ing.ID)
		if err != nil {
			return err
		}
		if used > 0 {
			return domain.Conflictf("%s is measured in %s by %d dish(es)", current.Name, current.Unit, used)
		}
	}
	return s.repo.UpdateIngredient(ctx, ing)
}

func (s *IngredientService) Delete(ctx context.Context, id int) error {
	used, err := s.repo.CountDishesUsingIngredient(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.Conflictf("ingredient %d is used by %d dish(es)", id, used)
	}
	rows, err := s.repo.DeleteIngredient(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("ingredient %d", id)
	}
	return nil
}

// LowStockAlerts reports every ingredient whose stock cannot cover
// multiplier portions of the most demanding dish that uses it.
func (s *IngredientService) LowStockAlerts(ctx context.Context) ([]domain.LowStockAlert, error) {
	components, err := s.repo.ListComponentStock(ctx)
	if err != nil {
		return nil, err
	}

	byIngredient := make(map[int]*domain.LowStockAlert)
	for _, c := range components {
		threshold := c.Quantity.Mul(s.config.LowStockMultiplier)
		if !c.InStock.LessThan(threshold) {
			continue
		}
		alert, ok := byIngredient[c.IngredientID]
		if !ok {
			byIngredient[c.IngredientID] = &domain.LowStockAlert{
				IngredientID: c.IngredientID,
				Name:         c.IngredientName,
				Unit:         c.Unit,
				Stock:        c.InStock,
				Threshold:    threshold,
			}
			continue
		}
		if threshold.GreaterThan(alert.Threshold) {
			alert.Threshold = threshold
		}
	}

	alerts := make([]domain.LowStockAlert, 0, len(byIngredient))
	for _, alert := range byIngredient {
		alerts = append(alerts, *alert)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Name < alerts[j].Name })
	return alerts, nil
}

type DishService struct {
	repo   DishRepository
	config OrderConfig
}

func NewDishService(repo DishRepository, config OrderConfig) *DishService {
	return &DishService{repo: repo, config: config.withDefaults()}
}

// prepareDish validates the recipe against the current ingredient rows and
// copies their names and prices onto the components.
func (s *DishService) prepareDish(ctx context.Context, dish *domain.Dish) error {
	dish.Name = strings.TrimSpace(dish.Name)
	if dish.Name == "" {
		return domain.Validationf("dish name is required")
	}
	if len(dish.Components) == 0 {
		return domain.Validationf("dish %s needs at least one ingredient", dish.Name)
	}

	ids := make([]int, 0, len(dish.Components))
	seen := make(map[int]bool, len(dish.Components))
	for i := range dish.Components {
		c := &dish.Components[i]
		c.Unit = strings.TrimSpace(c.Unit)
		if c.IngredientID <= 0 {
			return domain.Validationf("ingredient id is required for every component")
		}
		if seen[c.IngredientID] {
			return domain.Validationf("ingredient %d is listed twice", c.IngredientID)
		}
		seen[c.IngredientID] = true
		if !c.Quantity.IsPositive() {
			return domain.Validationf("quantity for ingredient %d must be greater than 0", c.IngredientID)
		}
		if err := checkStored(fmt.Sprintf("quantity for ingredient %d", c.IngredientID), c.Quantity, quantityScale, maxQuantity); err != nil {
			return err
		}
		ids = append(ids, c.IngredientID)
	}

	ingredients, err := s.repo.IngredientsByID(ctx, ids)
	if err != nil {
		return err
	}
	for i := range dish.Components {
		c := &dish.Components[i]
		ing, ok := ingredients[c.IngredientID]
		if !ok {
			return domain.NotFoundf("ingredient %d", c.IngredientID)
		}
		if c.Unit == "" {
			c.Unit = ing.Unit
		}
		if c.Unit != ing.Unit {
			return domain.Validationf("unit mismatch for %s: existing '%s', given '%s'", ing.Name, ing.Unit, c.Unit)
		}
		c.IngredientName = ing.Name
		c.UnitPrice = ing.UnitPrice
		c.InStock = ing.Quantity
	}
	s.price(dish)
	return nil
}

func (s *DishService) price(dish *domain.Dish) {
	dish.Cost = dish.UnitCost()
	dish.Price = dish.Cost.Add(dish.Cost.Mul(s.config.VATRate))
}

func (s *DishService) Create(ctx context.Context, dish *domain.Dish) error {
	if err := s.prepareDish(ctx, dish); err != nil {
		return err
	}
	return s.repo.CreateDish(ctx, dish)
}

func (s *DishService) Get(ctx context.Context, id int) (*domain.Dish, error) {
	dish, err := s.repo.GetDish(ctx, id)
	if err != nil {
		return nil, err
	}
	s.price(dish)
	return dish, nil
}

// List filters by name in the store and by VAT-inclusive price here, since
// the price only exists once components are priced.
func (s *DishService) List(ctx context.Context, filter domain.DishFilter) ([]domain.Dish, error) {
	op := filter.Op
	if op == "" {
		op = domain.CompareLessOrEqual
	}
	if op != domain.CompareLessOrEqual && op != domain.CompareGreaterOrEqual {
		return nil, domain.Validationf("unknown comparison %q", filter.Op)
	}

	dishes, err := s.repo.ListDishes(ctx, strings.TrimSpace(filter.Name))
	if err != nil {
		return nil, err
	}

	result := make([]domain.Dish, 0, len(dishes))
	for _, dish := range dishes {
		s.price(&dish)
		if filter.Price != nil && !comparePrice(dish.Price, *filter.Price, op) {
			continue
		}
		result = append(result, dish)
	}
	return result, nil
}

func comparePrice(value, bound decimal.Decimal, op string) bool {
	if op == domain.CompareGreaterOrEqual {
		return value.GreaterThanOrEqual(bound)
	}
	return value.LessThanOrEqual(bound)
}

func (s *DishService) Update(ctx context.Context, dish *domain.Dish) error {
	if err := s.prepareDish(ctx, dish); err != nil {
		return err
	}
	return s.repo.UpdateDish(ctx, dish)
}

// Delete refuses dishes that appear on stored orders so order history keeps
// its references.
func (s *DishService) Delete(ctx context.Context, id int) error {
	ordered, err := s.repo.CountOrdersWithDish(ctx, id)
	if err != nil {
		return err
	}
	if ordered > 0 {
		return domain.Conflictf("dish %d appears on %d order(s)", id, ordered)
	}
	rows, err := s.repo.DeleteDish(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundf("dish %d", id)
	}
	return nil
}
