package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"kitchen-stock/kitchen-svc/internal/domain"
)

type OrderService struct {
	repo      OrderRepository
	qrEncoder QRGenerator
	publisher OrderPublisher
	config    OrderConfig
}

// NewOrderService wires the order processor. qr and publisher may be nil.
func NewOrderService(repo OrderRepository, qr QRGenerator, publisher OrderPublisher, config OrderConfig) *OrderService {
	return &OrderService{
		repo:      repo,
		qrEncoder: qr,
		publisher: publisher,
		config:    config.withDefaults(),
	}
}

func validateLines(lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return domain.Validationf("select at least one dish with quantity greater than 0")
	}
	for i, line := range lines {
		if line.DishID <= 0 {
			return domain.Validationf("line %d: dish id is required", i+1)
		}
		if line.Quantity <= 0 {
			return domain.Validationf("line %d: quantity must be >= 1", i+1)
		}
	}
	return nil
}

func distinctDishIDs(lines []domain.OrderLine) []int {
	seen := make(map[int]bool, len(lines))
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		if !seen[line.DishID] {
			seen[line.DishID] = true
			ids = append(ids, line.DishID)
		}
	}
	sort.Ints(ids)
	return ids
}

// PlaceOrder validates the request, then inside one transaction locks the
// touched ingredient rows, checks stock, deducts it and stores the order.
// Nothing is written unless every step succeeds. The receipt QR code and the
// order_placed event are produced after commit and never fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, lines []domain.OrderLine) (*domain.PlacedOrder, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	var placed *domain.PlacedOrder
	err := s.repo.InTx(ctx, func(tx OrderTx) error {
		dishes, err := tx.LoadDishes(ctx, distinctDishIDs(lines))
		if err != nil {
			return err
		}
		for _, line := range lines {
			dish, ok := dishes[line.DishID]
			if !ok {
				return domain.NotFoundf("dish id %d", line.DishID)
			}
			if len(dish.Components) == 0 {
				return domain.Validationf("dish %s has no ingredients defined", dish.Name)
			}
		}

		stock, err := tx.LockIngredients(ctx, sortedIDs(Requirements(lines, dishes)))
		if err != nil {
			return err
		}

		placed, err = BuildOrder(lines, dishes, stock, s.config)
		if err != nil {
			return err
		}

		for _, change := range placed.Stock {
			if err := tx.SetStock(ctx, change.IngredientID, change.Remaining); err != nil {
				return fmt.Errorf("deduct %s: %w", change.Name, err)
			}
		}
		return tx.InsertOrder(ctx, &placed.Order)
	})
	if err != nil {
		return nil, err
	}

	orderID := placed.Order.ID
	log.Printf("[kitchen-svc] order %d placed: %d line(s), total %s, %d low-stock warning(s)",
		orderID, len(placed.Order.Items), placed.Order.Total.StringFixed(2), len(placed.Warnings))
	for _, w := range placed.Warnings {
		log.Printf("[kitchen-svc] low stock: %s %s%s left (threshold %s%s)",
			w.Name, w.Remaining.String(), w.Unit, w.Threshold.String(), w.Unit)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(orderID); err != nil {
			log.Printf("[kitchen-svc] WARNING: failed to generate QR code for order %d: %v", orderID, err)
		} else if err := s.repo.SaveQRCode(ctx, orderID, qr); err != nil {
			log.Printf("[kitchen-svc] WARNING: failed to store QR code for order %d: %v", orderID, err)
		}
	}
	placed.Order.QRCode = s.QRLink(orderID)

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, *placed); err != nil {
			log.Printf("[kitchen-svc] WARNING: failed to publish order %d: %v", orderID, err)
		}
	}

	return placed, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.QRCode = s.QRLink(order.ID)
	return order, nil
}

func (s *OrderService) GetQRCode(ctx context.Context, id int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(qr) > 0 || s.qrEncoder == nil {
		return qr, nil
	}

	regenerated, err := s.qrEncoder.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("regenerate QR code for order %d: %w", id, err)
	}
	if err := s.repo.SaveQRCode(ctx, id, regenerated); err != nil {
		log.Printf("[kitchen-svc] WARNING: failed to cache regenerated QR code for order %d: %v", id, err)
	}
	return regenerated, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}
