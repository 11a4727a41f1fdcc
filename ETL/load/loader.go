package load

import (
	"github.com/LilVoxy/housing_macro/ETL/models"
)

// Loader интерфейс для сохранения результатов стадий
type Loader interface {
	// Name возвращает имя приёмника для логов
	Name() string

	// LoadMerged полностью заменяет сохранённую объединённую таблицу
	LoadMerged(records []models.MergedRecord) error

	// LoadEnriched полностью заменяет сохранённую обогащённую таблицу
	LoadEnriched(records []models.EnrichedRecord) error
}

// mergedRows переводит записи в строки таблицы в порядке MergedColumns
func mergedRows(records []models.MergedRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.MergedValues())
	}
	return rows
}

// enrichedRows переводит записи в строки таблицы в порядке EnrichedColumns
func enrichedRows(records []models.EnrichedRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.EnrichedValues())
	}
	return rows
}
