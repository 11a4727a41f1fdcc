// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
	"github.com/LilVoxy/housing_macro/database"
	"github.com/LilVoxy/housing_macro/websocket"
)

// DatasetReader доступ к загруженной обогащённой таблице
type DatasetReader interface {
	Records() ([]models.EnrichedRecord, error)
	Countries() ([]string, error)
	Series(country string) ([]models.EnrichedRecord, bool, error)
	Info() (database.Info, error)
}

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, store DatasetReader, wsManager *websocket.Manager, logger *utils.ETLLogger, staticDir string) {
	// Применяем CORS middleware
	router.Use(CORSMiddleware)
	router.Use(LoggingMiddleware(logger))

	// WebSocket уведомления об обновлении таблицы
	router.HandleFunc("/ws", wsManager.HandleConnections)

	// API таблицы
	router.HandleFunc("/api/dataset", GetDatasetHandler(store, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/countries", GetCountriesHandler(store, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/series/{country}", GetSeriesHandler(store, logger)).Methods("GET", "OPTIONS")

	// API аналитики
	router.HandleFunc("/api/rankings", GetRankingsHandler(store, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/correlation", GetCorrelationHandler(store, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/ecb-impact", GetECBImpactHandler(store, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/trend/{country}", GetTrendHandler(store, logger)).Methods("GET", "OPTIONS")

	// Статические файлы дашборда
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
}
