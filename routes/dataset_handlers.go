// routes/dataset_handlers.go
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
	"github.com/LilVoxy/housing_macro/database"
	"github.com/LilVoxy/housing_macro/processor"
)

// DatasetResponse структура ответа API для всей таблицы
type DatasetResponse struct {
	Info    database.Info           `json:"info"`
	Records []models.EnrichedRecord `json:"records"`
}

// SeriesResponse структура ответа API для ряда одной страны
type SeriesResponse struct {
	Country string                  `json:"country"`
	Records []models.EnrichedRecord `json:"records"`
}

// GetDatasetHandler отдаёт всю обогащённую таблицу. Поддерживает сжатие snappy.
func GetDatasetHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.Records()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		info, err := store.Info()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}

		response := DatasetResponse{Info: info, Records: records}

		w.Header().Add("Vary", "Accept-Encoding")
		if !processor.AcceptsSnappy(r) {
			writeJSON(w, logger, http.StatusOK, response)
			return
		}

		data, err := json.Marshal(response)
		if err != nil {
			logger.Error("Ошибка кодирования ответа: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", processor.SnappyFramedEncoding)
		fw := processor.NewFramedWriter(w)
		if _, err := fw.Write(data); err != nil {
			logger.Warn("Ошибка отправки ответа: %v", err)
		}
		if err := fw.Close(); err != nil {
			logger.Error("Ошибка сжатия ответа: %v", err)
		}
	}
}

// GetCountriesHandler отдаёт отсортированный список стран
func GetCountriesHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		countries, err := store.Countries()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string][]string{"countries": countries})
	}
}

// GetSeriesHandler отдаёт строки одной страны
func GetSeriesHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := mux.Vars(r)["country"]

		series, ok, err := store.Series(country)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		if !ok {
			http.Error(w, "Страна не найдена: "+country, http.StatusNotFound)
			return
		}

		writeJSON(w, logger, http.StatusOK, SeriesResponse{Country: country, Records: series})
	}
}
