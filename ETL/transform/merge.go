package transform

import "github.com/LilVoxy/housing_macro/ETL/models"

// mergeSources выполняет левые соединения: HPI с инфляцией по (страна, год, квартал),
// затем со ставкой по (год, квартал). Каждая строка HPI попадает в результат.
func mergeSources(
	hpi []hpiPoint,
	inflation map[models.PeriodKey]*float64,
	rates map[models.QuarterKey]*float64,
	stats *models.MergeStats,
) []models.MergedRecord {
	records := make([]models.MergedRecord, 0, len(hpi))

	for _, point := range hpi {
		record := models.MergedRecord{
			Country: point.key.Country,
			Year:    point.key.Year,
			Quarter: point.key.Quarter,
			HPI:     point.value,
		}

		// Строка без периода ни с чем не соединяется
		if point.key.Valid() {
			if v, ok := inflation[point.key]; ok {
				record.Inflation = v
				stats.InflationMatched++
			}
			if v, ok := rates[point.key.QuarterKey]; ok {
				record.InterestRate = v
				stats.RateMatched++
			}
		}

		records = append(records, record)
	}

	return records
}

// NormalizeMerged приводит сохранённые строки объединённой таблицы к типам
func NormalizeMerged(rows []models.MergedRow) []models.MergedRecord {
	records := make([]models.MergedRecord, 0, len(rows))
	for _, row := range rows {
		period := models.ParsePeriod(row.Year, row.Quarter)
		records = append(records, models.MergedRecord{
			Country:      row.Country,
			Year:         period.Year,
			Quarter:      period.Quarter,
			HPI:          models.ParseNumber(row.HPI),
			Inflation:    models.ParseNumber(row.Inflation),
			InterestRate: models.ParseNumber(row.InterestRate),
		})
	}
	return records
}
