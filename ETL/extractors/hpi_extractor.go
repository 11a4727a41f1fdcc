package extractors

import (
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Столбцы исходного файла HPI
const (
	colUnit       = "unit"
	colGeo        = "geo"
	colCoicop     = "coicop"
	colTimePeriod = "TIME_PERIOD"
	colObsValue   = "OBS_VALUE"
)

// HPIExtractor отвечает за чтение индекса цен на жильё
type HPIExtractor struct {
	path   string
	logger *utils.ETLLogger
}

// NewHPIExtractor создает новый экземпляр HPIExtractor
func NewHPIExtractor(path string, logger *utils.ETLLogger) *HPIExtractor {
	return &HPIExtractor{
		path:   path,
		logger: logger,
	}
}

// ExtractHPI читает все строки файла HPI без фильтрации
func (e *HPIExtractor) ExtractHPI() ([]models.HPIObservation, error) {
	table, err := readCSVTable(e.path, colUnit, colGeo, colTimePeriod, colObsValue)
	if err != nil {
		return nil, err
	}

	observations := make([]models.HPIObservation, 0, table.len())
	for _, row := range table.rows {
		observations = append(observations, models.HPIObservation{
			Unit:       table.value(row, colUnit),
			Geo:        table.value(row, colGeo),
			TimePeriod: table.value(row, colTimePeriod),
			Value:      table.value(row, colObsValue),
		})
	}

	e.logger.Debug("Прочитано %d строк HPI из %s", len(observations), e.path)
	return observations, nil
}
