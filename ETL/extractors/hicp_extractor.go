package extractors

import (
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// HICPExtractor отвечает за чтение месячной инфляции
type HICPExtractor struct {
	path   string
	logger *utils.ETLLogger
}

// NewHICPExtractor создает новый экземпляр HICPExtractor
func NewHICPExtractor(path string, logger *utils.ETLLogger) *HICPExtractor {
	return &HICPExtractor{
		path:   path,
		logger: logger,
	}
}

// ExtractHICP читает все строки файла HICP без фильтрации
func (e *HICPExtractor) ExtractHICP() ([]models.HICPObservation, error) {
	table, err := readCSVTable(e.path, colUnit, colCoicop, colGeo, colTimePeriod, colObsValue)
	if err != nil {
		return nil, err
	}

	observations := make([]models.HICPObservation, 0, table.len())
	for _, row := range table.rows {
		observations = append(observations, models.HICPObservation{
			Unit:       table.value(row, colUnit),
			Coicop:     table.value(row, colCoicop),
			Geo:        table.value(row, colGeo),
			TimePeriod: table.value(row, colTimePeriod),
			Value:      table.value(row, colObsValue),
		})
	}

	e.logger.Debug("Прочитано %d строк HICP из %s", len(observations), e.path)
	return observations, nil
}
