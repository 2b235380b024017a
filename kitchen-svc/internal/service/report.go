package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"kitchen-stock/kitchen-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CSVHeader is the column layout of the order export: one row per order
// item, order-level amounts repeated on each of its rows.
var CSVHeader = []string{
	"order_id", "order_date", "dish_name", "quantity", "unit_price", "line_cost",
	"subtotal", "vat_rate", "vat_amount", "total",
}

const csvDateLayout = "2006-01-02 15:04:05"

type ReportService struct {
	repo OrderRepository
}

func NewReportService(repo OrderRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) QueryOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.Validationf("date range ends before it starts")
	}
	filter.DishName = strings.TrimSpace(filter.DishName)
	return s.repo.QueryOrders(ctx, filter)
}

func (s *ReportService) ExportCSV(w io.Writer, orders []domain.Order) error {
	return WriteOrdersCSV(w, orders)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func WriteOrdersCSV(w io.Writer, orders []domain.Order) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, order := range orders {
		for _, item := range order.Items {
			record := []string{
				strconv.Itoa(order.ID),
				order.CreatedAt.UTC().Format(csvDateLayout),
				item.DishName,
				strconv.Itoa(item.Quantity),
				money(item.UnitPrice),
				money(item.LineCost),
				money(order.Subtotal),
				percent(order.VATRate),
				money(order.VATAmount),
				money(order.Total),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
