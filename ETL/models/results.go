package models

// MergeStats содержит счётчики первой стадии (нормализация и объединение)
type MergeStats struct {
	HPIRows           int // строк в исходном файле HPI
	HPIFiltered       int // строк после фильтра по unit
	HPIInvalidPeriods int // строк HPI с неразборчивым периодом
	HPIInvalidValues  int // строк HPI с нечисловым значением

	HICPRows         int
	HICPFiltered     int
	HICPInvalidDates int
	HICPQuarters     int // число ключей (страна, год, квартал) после агрегации

	RateRows         int
	RateInvalidDates int
	RateQuarters     int

	InflationMatched int // строк, для которых нашлась инфляция
	RateMatched      int // строк, для которых нашлась ставка
}

// MergeResult результат первой стадии
type MergeResult struct {
	Records []MergedRecord
	Stats   MergeStats
}

// EnrichStats содержит счётчики второй стадии
type EnrichStats struct {
	Rows           int
	Countries      int
	InvalidPeriods int
}

// EnrichResult результат второй стадии
type EnrichResult struct {
	Records []EnrichedRecord
	Stats   EnrichStats
}
