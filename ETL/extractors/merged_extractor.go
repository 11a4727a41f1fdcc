package extractors

import (
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// MergedExtractor читает сохранённую объединённую таблицу (вход второй стадии)
type MergedExtractor struct {
	path   string
	logger *utils.ETLLogger
}

// NewMergedExtractor создает новый экземпляр MergedExtractor
func NewMergedExtractor(path string, logger *utils.ETLLogger) *MergedExtractor {
	return &MergedExtractor{
		path:   path,
		logger: logger,
	}
}

// ExtractMerged возвращает строки объединённой таблицы без приведения типов
func (e *MergedExtractor) ExtractMerged() ([]models.MergedRow, error) {
	table, err := readCSVTable(e.path, models.MergedColumns...)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MergedRow, 0, table.len())
	for _, row := range table.rows {
		rows = append(rows, models.MergedRow{
			Country:      table.value(row, "country"),
			Year:         table.value(row, "year"),
			Quarter:      table.value(row, "quarter"),
			HPI:          table.value(row, string(models.MetricHPI)),
			Inflation:    table.value(row, string(models.MetricInflation)),
			InterestRate: table.value(row, string(models.MetricInterestRate)),
		})
	}

	e.logger.Debug("Прочитано %d строк объединённой таблицы из %s", len(rows), e.path)
	return rows, nil
}

// EnrichedExtractor читает итоговую обогащённую таблицу (используется сервером дашборда)
type EnrichedExtractor struct {
	path string
}

// NewEnrichedExtractor создает новый экземпляр EnrichedExtractor
func NewEnrichedExtractor(path string) *EnrichedExtractor {
	return &EnrichedExtractor{path: path}
}

// ExtractEnriched читает обогащённую таблицу с приведением типов
func (e *EnrichedExtractor) ExtractEnriched() ([]models.EnrichedRecord, error) {
	table, err := readCSVTable(e.path, models.EnrichedColumns...)
	if err != nil {
		return nil, err
	}

	records := make([]models.EnrichedRecord, 0, table.len())
	for _, row := range table.rows {
		period := models.ParsePeriod(table.value(row, "year"), table.value(row, "quarter"))
		num := func(col string) *float64 { return models.ParseNumber(table.value(row, col)) }

		rec := models.EnrichedRecord{
			MergedRecord: models.MergedRecord{
				Country:      table.value(row, "country"),
				Year:         period.Year,
				Quarter:      period.Quarter,
				HPI:          num(string(models.MetricHPI)),
				Inflation:    num(string(models.MetricInflation)),
				InterestRate: num(string(models.MetricInterestRate)),
			},
		}
		for _, m := range models.Metrics {
			rec.SetChanges(m, num(m.QoQColumn()), num(m.YoYColumn()))
		}
		records = append(records, rec)
	}

	return records, nil
}
