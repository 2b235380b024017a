package tests

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"
	"kitchen-stock/kitchen-svc/internal/mocks"
	"kitchen-stock/kitchen-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const csvHeaderLine = "order_id,order_date,dish_name,quantity,unit_price,line_cost,subtotal,vat_rate,vat_amount,total"

func TestWriteOrdersCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, service.WriteOrdersCSV(&buf, nil))

	assert.Equal(t, csvHeaderLine+"\n", buf.String())
}

func TestWriteOrdersCSV_OneRowPerItem(t *testing.T) {
	orders := []domain.Order{{
		ID:        7,
		CreatedAt: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{DishName: "Bread", Quantity: 2, UnitPrice: d("2"), LineCost: d("4")},
			{DishName: "Soup, hot", Quantity: 1, UnitPrice: d("1.3971"), LineCost: d("1.3971")},
		},
		Subtotal:  d("5.3971"),
		VATRate:   d("0.21"),
		VATAmount: d("1.133391"),
		Total:     d("6.530491"),
	}}
	var buf bytes.Buffer

	require.NoError(t, service.WriteOrdersCSV(&buf, orders))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, csvHeaderLine, lines[0])
	assert.Equal(t, "7,2024-03-05 14:30:00,Bread,2,2.00,4.00,5.40,21%,1.13,6.53", lines[1])
	assert.Equal(t, `7,2024-03-05 14:30:00,"Soup, hot",1,1.40,1.40,5.40,21%,1.13,6.53`, lines[2])
}

func TestReportService_QueryOrders(t *testing.T) {
	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   domain.OrderFilter
		wantRepo bool
		wantErr  bool
	}{
		{name: "inverted range", filter: domain.OrderFilter{From: &from, To: &to}, wantErr: true},
		{name: "dish name trimmed", filter: domain.OrderFilter{From: &to, To: &from, DishName: " bread "}, wantRepo: true},
		{name: "unbounded", filter: domain.OrderFilter{}, wantRepo: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewOrderRepository(t)
			svc := service.NewReportService(mockRepo)

			if testCase.wantRepo {
				mockRepo.On("QueryOrders", mock.Anything, mock.MatchedBy(func(f domain.OrderFilter) bool {
					return f.DishName == strings.TrimSpace(testCase.filter.DishName)
				})).Return([]domain.Order{}, nil).Once()
			}

			orders, err := svc.QueryOrders(context.Background(), testCase.filter)

			if testCase.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, orders)
		})
	}
}

func TestReportService_DateRangeOnPlacedOrders(t *testing.T) {
	store := bakery()
	orders := service.NewOrderService(store, nil, nil, service.DefaultOrderConfig())
	for i := 0; i < 3; i++ {
		_, err := orders.PlaceOrder(context.Background(), []domain.OrderLine{{DishID: cakeID, Quantity: 1}})
		require.NoError(t, err)
	}
	reports := service.NewReportService(store)

	// orders land at 12:01, 12:02 and 12:03
	from := time.Date(2024, 3, 5, 12, 2, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 12, 3, 0, 0, time.UTC)
	result, err := reports.QueryOrders(context.Background(), domain.OrderFilter{From: &from, To: &to})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 2, result[0].ID)
	assert.Equal(t, 3, result[1].ID)

	none, err := reports.QueryOrders(context.Background(), domain.OrderFilter{DishName: "bread"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
