package load

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// CSVLoader сохраняет таблицы в CSV-файлы с заголовком
type CSVLoader struct {
	mergedPath   string
	enrichedPath string
	logger       *utils.ETLLogger
}

// NewCSVLoader создает новый экземпляр CSVLoader
func NewCSVLoader(mergedPath, enrichedPath string, logger *utils.ETLLogger) *CSVLoader {
	return &CSVLoader{
		mergedPath:   mergedPath,
		enrichedPath: enrichedPath,
		logger:       logger,
	}
}

// Name возвращает имя приёмника
func (l *CSVLoader) Name() string { return "csv" }

// LoadMerged записывает объединённую таблицу
func (l *CSVLoader) LoadMerged(records []models.MergedRecord) error {
	if err := writeCSV(l.mergedPath, models.MergedColumns, mergedRows(records)); err != nil {
		return err
	}
	l.logger.Info("Объединённая таблица записана: %s (%d строк)", l.mergedPath, len(records))
	return nil
}

// LoadEnriched записывает обогащённую таблицу
func (l *CSVLoader) LoadEnriched(records []models.EnrichedRecord) error {
	if err := writeCSV(l.enrichedPath, models.EnrichedColumns, enrichedRows(records)); err != nil {
		return err
	}
	l.logger.Info("Обогащённая таблица записана: %s (%d строк)", l.enrichedPath, len(records))
	return nil
}

// writeCSV атомарно заменяет файл таблицей с заголовком
func writeCSV(path string, header []string, rows [][]string) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("ошибка записи заголовка: %w", err)
		}
		for i, row := range rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("ошибка записи строки %d: %w", i, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
}
