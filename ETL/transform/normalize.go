package transform

import (
	"strings"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// Фильтры исходных рядов
const (
	hpiUnitPrefix = "I15"   // индекс 2015=100
	hicpCoicop    = "CP00"  // все товары и услуги
	hicpUnit      = "RCH_A" // годовое изменение в процентах
)

// hpiPoint нормализованное наблюдение HPI. Ключ без периода (Valid() == false)
// означает, что метку периода разобрать не удалось.
type hpiPoint struct {
	key   models.PeriodKey
	value *float64
}

// normalizeHPI фильтрует ряды HPI по базе индекса и приводит их к ключу квартала.
// Порядок строк сохраняется.
func normalizeHPI(rows []models.HPIObservation, stats *models.MergeStats) []hpiPoint {
	stats.HPIRows = len(rows)

	points := make([]hpiPoint, 0, len(rows))
	for _, row := range rows {
		if !strings.HasPrefix(row.Unit, hpiUnitPrefix) {
			continue
		}

		period, ok := parseHPIPeriod(row.TimePeriod)
		if !ok {
			stats.HPIInvalidPeriods++
		}
		value := models.ParseNumber(row.Value)
		if value == nil && row.Value != "" {
			stats.HPIInvalidValues++
		}

		points = append(points, hpiPoint{
			key:   models.PeriodKey{Country: row.Geo, QuarterKey: period},
			value: value,
		})
	}

	stats.HPIFiltered = len(points)
	return points
}

// normalizeHICP фильтрует общий индекс инфляции и усредняет месяцы внутри квартала
func normalizeHICP(rows []models.HICPObservation, stats *models.MergeStats) map[models.PeriodKey]*float64 {
	stats.HICPRows = len(rows)

	groups := newGroupMean[models.PeriodKey]()
	for _, row := range rows {
		if row.Coicop != hicpCoicop || row.Unit != hicpUnit {
			continue
		}
		stats.HICPFiltered++

		period, ok := parseObservationDate(row.TimePeriod)
		if !ok {
			stats.HICPInvalidDates++
			continue
		}
		groups.add(models.PeriodKey{Country: row.Geo, QuarterKey: period}, models.ParseNumber(row.Value))
	}

	inflation := groups.means()
	stats.HICPQuarters = len(inflation)
	return inflation
}

// normalizeRates усредняет ставку ЕЦБ по кварталам. Ряд общий для всех стран.
func normalizeRates(rows []models.RateObservation, stats *models.MergeStats) map[models.QuarterKey]*float64 {
	stats.RateRows = len(rows)

	groups := newGroupMean[models.QuarterKey]()
	for _, row := range rows {
		period, ok := parseObservationDate(row.ObservationDate)
		if !ok {
			stats.RateInvalidDates++
			continue
		}
		groups.add(period, models.ParseNumber(row.Rate))
	}

	rates := groups.means()
	stats.RateQuarters = len(rates)
	return rates
}
