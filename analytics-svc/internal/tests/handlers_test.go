package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "kitchen-stock/analytics-svc/internal/api/http"
	"kitchen-stock/analytics-svc/internal/domain"
	"kitchen-stock/analytics-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnalyticsRouter(t *testing.T) (*mux.Router, *mocks.AnalyticsInterface) {
	svc := mocks.NewAnalyticsInterface(t)
	r := mux.NewRouter()
	httpapi.NewHandler(svc).RegisterRoutes(r)
	return r, svc
}

func TestHealth(t *testing.T) {
	r, _ := newAnalyticsRouter(t)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "analytics-svc")
}

func TestTopRankings(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setup      func(m *mocks.AnalyticsInterface)
		wantStatus int
	}{
		{
			name: "today default limit",
			url:  "/api/analytics/top-today",
			setup: func(m *mocks.AnalyticsInterface) {
				m.On("TopToday", mock.Anything, 10).Return([]domain.DishSales{{DishID: 10, DishName: "Bread", Portions: 3}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "all time explicit limit",
			url:  "/api/analytics/top-alltime?limit=3",
			setup: func(m *mocks.AnalyticsInterface) {
				m.On("TopAllTime", mock.Anything, 3).Return([]domain.DishSales{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "limit out of range",
			url:        "/api/analytics/top-today?limit=0",
			setup:      func(m *mocks.AnalyticsInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "limit not a number",
			url:        "/api/analytics/top-alltime?limit=ten",
			setup:      func(m *mocks.AnalyticsInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service failure",
			url:  "/api/analytics/top-alltime",
			setup: func(m *mocks.AnalyticsInterface) {
				m.On("TopAllTime", mock.Anything, 10).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r, svc := newAnalyticsRouter(t)
			testCase.setup(svc)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, testCase.url, nil))

			assert.Equal(t, testCase.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestGetRevenue(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		r, svc := newAnalyticsRouter(t)
		svc.On("Revenue", mock.Anything, "2024-03-05").Return(&domain.Revenue{
			Date: "2024-03-05", Orders: 2, Subtotal: decimal.NewFromInt(6), Total: decimal.RequireFromString("7.26"),
		}, nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/revenue?date=2024-03-05", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "2024-03-05", body["date"])
		assert.Equal(t, "7.26", body["total"])
	})

	t.Run("defaults to today", func(t *testing.T) {
		r, svc := newAnalyticsRouter(t)
		svc.On("Revenue", mock.Anything, mock.AnythingOfType("string")).Return(&domain.Revenue{}, nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/revenue", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		r, _ := newAnalyticsRouter(t)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/revenue?date=yesterday", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})
}

func TestGetLowStock(t *testing.T) {
	r, svc := newAnalyticsRouter(t)
	svc.On("LowStock", mock.Anything).Return([]domain.LowStockItem{
		{IngredientID: 1, Name: "Flour", Unit: "g", Remaining: decimal.NewFromInt(2), Threshold: decimal.NewFromInt(12)},
	}, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics/low-stock", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var items []domain.LowStockItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Flour", items[0].Name)
}
