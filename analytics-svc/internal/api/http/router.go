package httpapi

import (
	"log"
	"net/http"

	"kitchen-stock/config"

	"github.com/gorilla/mux"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return config.NewCORS().Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	logf("Analytics Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func logf(format string, args ...any) {
	log.Printf("[analytics-svc] "+format, args...)
}
