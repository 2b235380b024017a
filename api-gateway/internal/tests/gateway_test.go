package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kitchen-stock/api-gateway/internal/gateway"
	"kitchen-stock/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Targets(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{name: "ingredients list", method: http.MethodGet, path: "/api/ingredients?name=flour", wantURL: "http://kitchen/api/ingredients?name=flour"},
		{name: "dish by id", method: http.MethodPut, path: "/api/dishes/4", wantURL: "http://kitchen/api/dishes/4"},
		{name: "place order", method: http.MethodPost, path: "/api/orders", wantURL: "http://kitchen/api/orders"},
		{name: "csv export", method: http.MethodGet, path: "/api/orders/export.csv?dish=bread", wantURL: "http://kitchen/api/orders/export.csv?dish=bread"},
		{name: "order qr code", method: http.MethodGet, path: "/api/orders/7/qrcode", wantURL: "http://kitchen/api/orders/7/qrcode"},
		{name: "low stock alerts", method: http.MethodGet, path: "/api/alerts/low-stock", wantURL: "http://kitchen/api/alerts/low-stock"},
		{name: "analytics", method: http.MethodGet, path: "/api/analytics/top-today?limit=3", wantURL: "http://analytics/api/analytics/top-today?limit=3"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				KitchenSvcURL:   "http://kitchen",
				AnalyticsSvcURL: "http://analytics",
			}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.wantURL
			})).Return(okResponse(`{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), "ok")
		})
	}
}

func TestGateway_RouteHandler_ForwardsHeadersAndStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{KitchenSvcURL: "http://kitchen"}, mockClient)

	resp := &http.Response{
		StatusCode: http.StatusConflict,
		Body:       io.NopCloser(strings.NewReader(`{"error":"insufficient_stock"}`)),
		Header:     make(http.Header),
	}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("Content-Type") == "application/json"
	})).Return(resp, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[{"dish_id":1,"quantity":9}]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "insufficient_stock")
}

func TestGateway_RouteHandler_Unknown(t *testing.T) {
	tests := []string{"/api/unknown", "/api/ordersx", "/index.html"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			gw := gateway.NewGateway(gateway.Config{}, nil)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Contains(t, rr.Body.String(), "not_found")
		})
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{
		KitchenSvcURL: "http://invalid",
	}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/dishes", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "bad_gateway")
}

func TestGateway_SetupRoutes_Health(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
