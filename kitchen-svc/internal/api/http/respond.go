package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"kitchen-stock/kitchen-svc/internal/domain"
)

type errorResponse struct {
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Shortfalls []domain.Shortfall `json:"shortfalls,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logf("encode response: %v", err)
	}
}

// writeError picks the status from the error kind. Anything outside the
// domain taxonomy is logged and reported as a 500 without details.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:      "insufficient_stock",
			Message:    err.Error(),
			Shortfalls: stockErr.Shortfalls,
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()})
	default:
		logf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

const dateLayout = "2006-01-02"

// parseDate accepts a calendar day or a full RFC3339 timestamp. A bare day
// means its first instant, or its last microsecond when endOfDay is set;
// timestamptz keeps microseconds, so a finer bound rounds up to midnight.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Microsecond)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.Validationf("invalid date %q, expected YYYY-MM-DD or RFC3339", raw)
	}
	t = t.UTC()
	return &t, nil
}

func orderFilterFromQuery(r *http.Request) (domain.OrderFilter, error) {
	q := r.URL.Query()
	from, err := parseDate(q.Get("from"), false)
	if err != nil {
		return domain.OrderFilter{}, err
	}
	to, err := parseDate(q.Get("to"), true)
	if err != nil {
		return domain.OrderFilter{}, err
	}
	return domain.OrderFilter{From: from, To: to, DishName: q.Get("dish")}, nil
}
