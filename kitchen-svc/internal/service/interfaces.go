package service

import (
	"context"
	"io"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type IngredientRepository interface {
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, id int) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int) (int64, error)
	CountDishesUsingIngredient(ctx context.Context, id int) (int, error)
	ListComponentStock(ctx context.Context) ([]domain.DishComponent, error)
}

type DishRepository interface {
	CreateDish(ctx context.Context, dish *domain.Dish) error
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	ListDishes(ctx context.Context, nameLike string) ([]domain.Dish, error)
	UpdateDish(ctx context.Context, dish *domain.Dish) error
	DeleteDish(ctx context.Context, id int) (int64, error)
	CountOrdersWithDish(ctx context.Context, id int) (int, error)
	IngredientsByID(ctx context.Context, ids []int) (map[int]domain.Ingredient, error)
}

// OrderTx is the view of the store inside one order-placement transaction.
// LockIngredients must hold row locks until the transaction ends.
type OrderTx interface {
	LoadDishes(ctx context.Context, ids []int) (map[int]domain.Dish, error)
	LockIngredients(ctx context.Context, ids []int) (map[int]domain.Ingredient, error)
	SetStock(ctx context.Context, ingredientID int, quantity decimal.Decimal) error
	InsertOrder(ctx context.Context, order *domain.Order) error
}

type OrderRepository interface {
	InTx(ctx context.Context, fn func(tx OrderTx) error) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	QueryOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, placed domain.PlacedOrder) error
}

type IngredientServiceInterface interface {
	Create(ctx context.Context, ing *domain.Ingredient) error
	Get(ctx context.Context, id int) (*domain.Ingredient, error)
	List(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error)
	Update(ctx context.Context, ing *domain.Ingredient) error
	Delete(ctx context.Context, id int) error
	LowStockAlerts(ctx context.Context) ([]domain.LowStockAlert, error)
}

type DishServiceInterface interface {
	Create(ctx context.Context, dish *domain.Dish) error
	Get(ctx context.Context, id int) (*domain.Dish, error)
	List(ctx context.Context, filter domain.DishFilter) ([]domain.Dish, error)
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id int) error
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.PlacedOrder, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	GetQRCode(ctx context.Context, id int) ([]byte, error)
	QRLink(orderID int) string
}

type ReportServiceInterface interface {
	QueryOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ExportCSV(w io.Writer, orders []domain.Order) error
}

var (
	_ IngredientServiceInterface = (*IngredientService)(nil)
	_ DishServiceInterface       = (*DishService)(nil)
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ ReportServiceInterface     = (*ReportService)(nil)
)
