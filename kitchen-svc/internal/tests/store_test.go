package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"
	"kitchen-stock/kitchen-svc/internal/service"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memoryStore is an OrderRepository whose transactions work on copies and
// only publish them when the callback succeeds.
type memoryStore struct {
	mu          sync.Mutex
	dishes      map[int]domain.Dish
	ingredients map[int]domain.Ingredient
	orders      []domain.Order
	qr          map[int][]byte
	failInsert  error
	locked      [][]int
	now         time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		dishes:      map[int]domain.Dish{},
		ingredients: map[int]domain.Ingredient{},
		qr:          map[int][]byte{},
		now:         time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memoryStore) addIngredient(id int, name, unit, qty, price string) {
	s.ingredients[id] = domain.Ingredient{ID: id, Name: name, Unit: unit, Quantity: d(qty), UnitPrice: d(price)}
}

// addDish takes ingredient id / per-portion quantity pairs.
func (s *memoryStore) addDish(id int, name string, components map[int]string) {
	dish := domain.Dish{ID: id, Name: name}
	ids := make([]int, 0, len(components))
	for ingID := range components {
		ids = append(ids, ingID)
	}
	sort.Ints(ids)
	for _, ingID := range ids {
		dish.Components = append(dish.Components, domain.DishComponent{
			IngredientID: ingID,
			Quantity:     d(components[ingID]),
			Unit:         s.ingredients[ingID].Unit,
		})
	}
	s.dishes[id] = dish
}

func (s *memoryStore) stock(id int) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredients[id].Quantity
}

func (s *memoryStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memoryStore) InTx(ctx context.Context, fn func(tx service.OrderTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, ingredients: make(map[int]domain.Ingredient, len(s.ingredients))}
	for id, ing := range s.ingredients {
		tx.ingredients[id] = ing
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.ingredients = tx.ingredients
	s.orders = append(s.orders, tx.inserted...)
	return nil
}

func (s *memoryStore) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			found := order
			return &found, nil
		}
	}
	return nil, domain.NotFoundf("order %d", id)
}

func (s *memoryStore) QueryOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []domain.Order{}
	for _, order := range s.orders {
		if filter.From != nil && order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && order.CreatedAt.After(*filter.To) {
			continue
		}
		if filter.DishName != "" && !hasDish(order, filter.DishName) {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

func hasDish(order domain.Order, name string) bool {
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.DishName), strings.ToLower(name)) {
			return true
		}
	}
	return false
}

func (s *memoryStore) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qr[orderID] = qr
	return nil
}

func (s *memoryStore) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return s.qr[orderID], nil
		}
	}
	return nil, domain.NotFoundf("order %d", orderID)
}

type memoryTx struct {
	store       *memoryStore
	ingredients map[int]domain.Ingredient
	inserted    []domain.Order
}

func (tx *memoryTx) LoadDishes(ctx context.Context, ids []int) (map[int]domain.Dish, error) {
	dishes := make(map[int]domain.Dish, len(ids))
	for _, id := range ids {
		if dish, ok := tx.store.dishes[id]; ok {
			dishes[id] = dish
		}
	}
	return dishes, nil
}

func (tx *memoryTx) LockIngredients(ctx context.Context, ids []int) (map[int]domain.Ingredient, error) {
	tx.store.locked = append(tx.store.locked, append([]int(nil), ids...))
	result := make(map[int]domain.Ingredient, len(ids))
	for _, id := range ids {
		if ing, ok := tx.ingredients[id]; ok {
			result[id] = ing
		}
	}
	return result, nil
}

func (tx *memoryTx) SetStock(ctx context.Context, ingredientID int, quantity decimal.Decimal) error {
	ing, ok := tx.ingredients[ingredientID]
	if !ok {
		return domain.NotFoundf("ingredient %d", ingredientID)
	}
	ing.Quantity = quantity
	tx.ingredients[ingredientID] = ing
	return nil
}

func (tx *memoryTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	if tx.store.failInsert != nil {
		return tx.store.failInsert
	}
	order.ID = len(tx.store.orders) + len(tx.inserted) + 1
	order.CreatedAt = tx.store.now.Add(time.Duration(order.ID) * time.Minute)
	tx.inserted = append(tx.inserted, *order)
	return nil
}

var _ service.OrderRepository = (*memoryStore)(nil)
