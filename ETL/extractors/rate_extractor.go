package extractors

import (
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

const colObservationDate = "observation_date"

// RateExtractor отвечает за чтение ставки ЕЦБ
type RateExtractor struct {
	path       string
	rateColumn string
	logger     *utils.ETLLogger
}

// NewRateExtractor создает новый экземпляр RateExtractor.
// rateColumn - имя столбца значения в файле источника (например ECBDFR).
func NewRateExtractor(path, rateColumn string, logger *utils.ETLLogger) *RateExtractor {
	return &RateExtractor{
		path:       path,
		rateColumn: rateColumn,
		logger:     logger,
	}
}

// ExtractRates читает все строки файла ставки
func (e *RateExtractor) ExtractRates() ([]models.RateObservation, error) {
	table, err := readCSVTable(e.path, colObservationDate, e.rateColumn)
	if err != nil {
		return nil, err
	}

	observations := make([]models.RateObservation, 0, table.len())
	for _, row := range table.rows {
		observations = append(observations, models.RateObservation{
			ObservationDate: table.value(row, colObservationDate),
			Rate:            table.value(row, e.rateColumn),
		})
	}

	e.logger.Debug("Прочитано %d строк ставки из %s", len(observations), e.path)
	return observations, nil
}
