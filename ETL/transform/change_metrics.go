package transform

import (
	"math"
	"sort"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// Лаги в позициях ряда страны
const (
	QoQLag = 1
	YoYLag = 4
)

// PercentChange считает (current - previous) / previous * 100 с округлением.
// Пустой операнд, нулевое предыдущее значение или нечисловой результат дают nil.
func PercentChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	change := (*current - *previous) / *previous * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return nil
	}
	rounded := roundChange(change)
	return &rounded
}

// sortChronologically упорядочивает записи по стране и кварталу.
// Записи без периода идут в конце своей страны в исходном порядке.
func sortChronologically(records []models.EnrichedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		aValid, bValid := a.Period().Valid(), b.Period().Valid()
		if aValid != bValid {
			return aValid
		}
		if !aValid {
			return false
		}
		return a.Period().Start().Before(b.Period().Start())
	})
}

// enrichRecords сортирует записи и заполняет изменения внутри каждой страны.
// Записи без периода не участвуют в рядах и получают пустые изменения.
func enrichRecords(merged []models.MergedRecord) ([]models.EnrichedRecord, models.EnrichStats) {
	records := make([]models.EnrichedRecord, len(merged))
	for i, m := range merged {
		records[i] = models.EnrichedRecord{MergedRecord: m}
	}
	sortChronologically(records)

	stats := models.EnrichStats{Rows: len(records)}

	for start := 0; start < len(records); {
		end := start
		for end < len(records) && records[end].Country == records[start].Country {
			end++
		}
		stats.Countries++

		// Ряд страны: только записи с периодом, они идут первыми после сортировки
		series := records[start:end]
		valid := 0
		for valid < len(series) && series[valid].Period().Valid() {
			valid++
		}
		stats.InvalidPeriods += len(series) - valid

		fillChanges(series[:valid])
		start = end
	}

	return records, stats
}

// fillChanges считает квартальные и годовые изменения по позициям ряда
func fillChanges(series []models.EnrichedRecord) {
	for i := range series {
		for _, m := range models.Metrics {
			current := series[i].Value(m)
			series[i].SetChanges(m,
				PercentChange(current, lagValue(series, i, QoQLag, m)),
				PercentChange(current, lagValue(series, i, YoYLag, m)),
			)
		}
	}
}

// lagValue возвращает значение показателя на lag позиций раньше или nil вне ряда
func lagValue(series []models.EnrichedRecord, i, lag int, m models.Metric) *float64 {
	if i-lag < 0 {
		return nil
	}
	return series[i-lag].Value(m)
}
