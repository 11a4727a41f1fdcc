// routes/analytics_handlers.go
package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/housing_macro/ETL/analytics"
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// defaultForecastQuarters горизонт прогноза тренда, если ahead не указан
const defaultForecastQuarters = 4

// GetRankingsHandler отдаёт рейтинг стран по среднему HPI за диапазон лет
func GetRankingsHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var years analytics.YearRange
		var err error
		if years.From, err = optionalInt(query.Get("from")); err != nil {
			http.Error(w, "Неверный параметр from", http.StatusBadRequest)
			return
		}
		if years.To, err = optionalInt(query.Get("to")); err != nil {
			http.Error(w, "Неверный параметр to", http.StatusBadRequest)
			return
		}

		records, err := store.Records()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, map[string]interface{}{
			"rankings": analytics.Rankings(records, years),
		})
	}
}

// GetCorrelationHandler отдаёт корреляцию Пирсона между двумя столбцами
func GetCorrelationHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		x := query.Get("x")
		if x == "" {
			x = string(models.MetricHPI)
		}
		y := query.Get("y")
		if y == "" {
			y = string(models.MetricInterestRate)
		}

		records, err := store.Records()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}

		result, err := analytics.Correlation(records, query.Get("country"), x, y)
		if errors.Is(err, analytics.ErrUnknownColumn) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			logger.Error("Ошибка расчёта корреляции: %v", err)
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusOK, result)
	}
}

// GetECBImpactHandler сравнивает средний квартальный рост HPI до и после поворота политики ЕЦБ
func GetECBImpactHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		pivot := analytics.DefaultECBPivot
		if s := query.Get("year"); s != "" {
			year, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "Неверный параметр year", http.StatusBadRequest)
				return
			}
			pivot.Year = year
		}
		if s := query.Get("quarter"); s != "" {
			q, ok := models.ParseQuarter(s)
			if !ok {
				http.Error(w, "Неверный параметр quarter", http.StatusBadRequest)
				return
			}
			pivot.Quarter = q
		}

		records, err := store.Records()
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, analytics.ECBImpact(records, query.Get("country"), pivot))
	}
}

// GetTrendHandler отдаёт линейный тренд HPI страны и прогноз
func GetTrendHandler(store DatasetReader, logger *utils.ETLLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := mux.Vars(r)["country"]

		ahead := defaultForecastQuarters
		if s := r.URL.Query().Get("ahead"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > analytics.MaxForecastQuarters {
				http.Error(w, "Неверный параметр ahead", http.StatusBadRequest)
				return
			}
			ahead = n
		}

		series, ok, err := store.Series(country)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		if !ok {
			http.Error(w, "Страна не найдена: "+country, http.StatusNotFound)
			return
		}

		result, err := analytics.HPITrend(series, country, ahead)
		if errors.Is(err, analytics.ErrInsufficientData) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			logger.Error("Ошибка расчёта тренда: %v", err)
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, http.StatusOK, result)
	}
}

// optionalInt разбирает необязательный целочисленный параметр, пустая строка даёт 0
func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
