package extractors

import (
	"fmt"
	"time"

	"github.com/LilVoxy/housing_macro/ETL/config"
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Extractor координирует процесс извлечения данных из исходных файлов
type Extractor struct {
	logger          *utils.ETLLogger
	hpiExtractor    *HPIExtractor
	hicpExtractor   *HICPExtractor
	rateExtractor   *RateExtractor
	mergedExtractor *MergedExtractor
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(paths config.PathsConfig, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		logger:          logger,
		hpiExtractor:    NewHPIExtractor(paths.HPIPath(), logger),
		hicpExtractor:   NewHICPExtractor(paths.HICPPath(), logger),
		rateExtractor:   NewRateExtractor(paths.RatesPath(), paths.RateColumn, logger),
		mergedExtractor: NewMergedExtractor(paths.MergedPath(), logger),
	}
}

// Extract читает три исходные таблицы для первой стадии.
// Отсутствие файла или столбца прерывает извлечение.
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	// Извлекаем индекс цен на жильё
	extractedData.HPI, err = e.hpiExtractor.ExtractHPI()
	if err != nil {
		e.logger.Error("Ошибка при извлечении HPI: %v", err)
		return nil, fmt.Errorf("ошибка извлечения HPI: %w", err)
	}

	// Извлекаем инфляцию
	extractedData.HICP, err = e.hicpExtractor.ExtractHICP()
	if err != nil {
		e.logger.Error("Ошибка при извлечении HICP: %v", err)
		return nil, fmt.Errorf("ошибка извлечения HICP: %w", err)
	}

	// Извлекаем ставку ЕЦБ
	extractedData.Rates, err = e.rateExtractor.ExtractRates()
	if err != nil {
		e.logger.Error("Ошибка при извлечении ставки ЕЦБ: %v", err)
		return nil, fmt.Errorf("ошибка извлечения ставки ЕЦБ: %w", err)
	}

	e.logger.LogExtractComplete(
		len(extractedData.HPI),
		len(extractedData.HICP),
		len(extractedData.Rates),
		time.Since(startTime),
	)

	return &extractedData, nil
}

// ExtractMerged читает объединённую таблицу для второй стадии
func (e *Extractor) ExtractMerged() ([]models.MergedRow, error) {
	rows, err := e.mergedExtractor.ExtractMerged()
	if err != nil {
		e.logger.Error("Ошибка при чтении объединённой таблицы: %v", err)
		return nil, fmt.Errorf("ошибка извлечения объединённой таблицы: %w", err)
	}
	return rows, nil
}
