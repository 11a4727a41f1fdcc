// routes/middleware.go
package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// CORSMiddleware разрешает запросы дашборда с любого origin
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Encoding")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware пишет в лог метод, путь и длительность запроса
func LoggingMiddleware(logger *utils.ETLLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
		})
	}
}
