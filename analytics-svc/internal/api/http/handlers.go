package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"kitchen-stock/analytics-svc/internal/service"
	"kitchen-stock/config"

	"github.com/gorilla/mux"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "analytics-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/analytics/top-alltime", h.getTopAllTime).Methods("GET")
	r.HandleFunc("/api/analytics/revenue", h.getRevenue).Methods("GET")
	r.HandleFunc("/api/analytics/low-stock", h.getLowStock).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}

func limitParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, false
	}
	return limit, true
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "limit must be between 1 and 100")
		return
	}
	data, err := h.Analytics.TopToday(r.Context(), limit)
	if err != nil {
		logf("top today: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "limit must be between 1 and 100")
		return
	}
	data, err := h.Analytics.TopAllTime(r.Context(), limit)
	if err != nil {
		logf("top all time: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getRevenue(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("date")
	if day == "" {
		day = config.Day(time.Now())
	}
	if _, err := time.Parse(config.DayLayout, day); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}
	data, err := h.Analytics.Revenue(r.Context(), day)
	if err != nil {
		logf("revenue %s: %v", day, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getLowStock(w http.ResponseWriter, r *http.Request) {
	data, err := h.Analytics.LowStock(r.Context())
	if err != nil {
		logf("low stock: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, data)
}
