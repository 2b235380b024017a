package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"
	"kitchen-stock/kitchen-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Ingredients service.IngredientServiceInterface
	Dishes      service.DishServiceInterface
	Orders      service.OrderServiceInterface
	Reports     service.ReportServiceInterface
}

func NewHandler(ingSvc service.IngredientServiceInterface, dishSvc service.DishServiceInterface, orderSvc service.OrderServiceInterface, reportSvc service.ReportServiceInterface) *Handler {
	return &Handler{
		Ingredients: ingSvc,
		Dishes:      dishSvc,
		Orders:      orderSvc,
		Reports:     reportSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/ingredients", h.createIngredient).Methods("POST")
	r.HandleFunc("/api/ingredients", h.getIngredients).Methods("GET")
	r.HandleFunc("/api/ingredients/{id}", h.getIngredient).Methods("GET")
	r.HandleFunc("/api/ingredients/{id}", h.updateIngredient).Methods("PUT")
	r.HandleFunc("/api/ingredients/{id}", h.deleteIngredient).Methods("DELETE")

	r.HandleFunc("/api/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/api/dishes/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/api/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/api/dishes/{id}", h.deleteDish).Methods("DELETE")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/export.csv", h.exportOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/alerts/low-stock", h.getLowStockAlerts).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "kitchen-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("invalid JSON format: %v", err)
	}
	return nil
}

func optionalDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Validationf("invalid %s %q", key, raw)
	}
	return &value, nil
}

func (h *Handler) createIngredient(w http.ResponseWriter, r *http.Request) {
	var ing domain.Ingredient
	if err := decodeBody(r, &ing); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Ingredients.Create(r.Context(), &ing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ing)
}

func (h *Handler) getIngredients(w http.ResponseWriter, r *http.Request) {
	qty, err := optionalDecimal(r, "qty")
	if err != nil {
		writeError(w, err)
		return
	}
	ingredients, err := h.Ingredients.List(r.Context(), domain.IngredientFilter{
		Name:     r.URL.Query().Get("name"),
		Quantity: qty,
		Op:       r.URL.Query().Get("op"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (h *Handler) getIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ing, err := h.Ingredients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (h *Handler) updateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var ing domain.Ingredient
	if err := decodeBody(r, &ing); err != nil {
		writeError(w, err)
		return
	}
	ing.ID = id
	if err := h.Ingredients.Update(r.Context(), &ing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (h *Handler) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Ingredients.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getLowStockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Ingredients.LowStockAlerts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := decodeBody(r, &dish); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Dishes.Create(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	price, err := optionalDecimal(r, "price")
	if err != nil {
		writeError(w, err)
		return
	}
	dishes, err := h.Dishes.List(r.Context(), domain.DishFilter{
		Name:  r.URL.Query().Get("name"),
		Price: price,
		Op:    r.URL.Query().Get("op"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	dish, err := h.Dishes.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var dish domain.Dish
	if err := decodeBody(r, &dish); err != nil {
		writeError(w, err)
		return
	}
	dish.ID = id
	if err := h.Dishes.Update(r.Context(), &dish); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Dishes.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type placeOrderRequest struct {
	Items []domain.OrderLine `json:"items"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	placed, err := h.Orders.PlaceOrder(r.Context(), req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orders, err := h.Reports.QueryOrders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	orders, err := h.Reports.QueryOrders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=orders.csv")
	w.WriteHeader(http.StatusOK)
	if err := h.Reports.ExportCSV(w, orders); err != nil {
		logf("csv export failed: %v", err)
	}
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	qrCode, err := h.Orders.GetQRCode(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		writeError(w, domain.NotFoundf("QR code for order %d", id))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}
