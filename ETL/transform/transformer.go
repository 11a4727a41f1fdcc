package transform

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Transformer координирует обе стадии преобразования: объединение источников
// и расчёт производных изменений
type Transformer struct {
	logger *utils.ETLLogger
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger) *Transformer {
	return &Transformer{logger: logger}
}

// Merge нормализует три источника к кварталу и соединяет их с HPI слева
func (t *Transformer) Merge(data *models.ExtractedData) (*models.MergeResult, error) {
	if data == nil {
		return nil, errors.New("нет извлечённых данных для объединения")
	}

	startTime := time.Now()
	t.logger.Info("Начало фазы Transform: нормализация и объединение источников")

	var stats models.MergeStats

	// 1. HPI (опорная таблица)
	hpi := normalizeHPI(data.HPI, &stats)
	t.logger.Debug("HPI: %d строк, после фильтра %d", stats.HPIRows, stats.HPIFiltered)

	// 2. Инфляция, месяцы усредняются внутри квартала
	inflation := normalizeHICP(data.HICP, &stats)
	t.logger.Debug("HICP: %d строк, после фильтра %d, кварталов %d",
		stats.HICPRows, stats.HICPFiltered, stats.HICPQuarters)

	// 3. Ставка ЕЦБ, общая для всех стран
	rates := normalizeRates(data.Rates, &stats)
	t.logger.Debug("Ставка ЕЦБ: %d строк, кварталов %d", stats.RateRows, stats.RateQuarters)

	// 4. Левые соединения
	records := mergeSources(hpi, inflation, rates, &stats)

	t.logDataQuality(stats)
	t.logger.Zap().Info("Источники объединены",
		zap.Int("rows", len(records)),
		zap.Int("inflation_matched", stats.InflationMatched),
		zap.Int("rate_matched", stats.RateMatched),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &models.MergeResult{Records: records, Stats: stats}, nil
}

// Enrich рассчитывает квартальные и годовые изменения по сохранённой объединённой таблице
func (t *Transformer) Enrich(rows []models.MergedRow) (*models.EnrichResult, error) {
	return t.EnrichRecords(NormalizeMerged(rows))
}

// EnrichRecords рассчитывает изменения по уже типизированным записям
func (t *Transformer) EnrichRecords(merged []models.MergedRecord) (*models.EnrichResult, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform: расчёт изменений QoQ/YoY")

	records, stats := enrichRecords(merged)

	if stats.InvalidPeriods > 0 {
		t.logger.Warn("Строк без периода: %d, изменения для них не рассчитываются", stats.InvalidPeriods)
	}
	t.logger.Zap().Info("Изменения рассчитаны",
		zap.Int("rows", stats.Rows),
		zap.Int("countries", stats.Countries),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &models.EnrichResult{Records: records, Stats: stats}, nil
}

// logDataQuality предупреждает о значениях, приведённых к пустым
func (t *Transformer) logDataQuality(stats models.MergeStats) {
	if stats.HPIInvalidPeriods > 0 {
		t.logger.Warn("HPI: строк с неразборчивым периодом: %d", stats.HPIInvalidPeriods)
	}
	if stats.HPIInvalidValues > 0 {
		t.logger.Warn("HPI: строк с нечисловым значением: %d", stats.HPIInvalidValues)
	}
	if stats.HICPInvalidDates > 0 {
		t.logger.Warn("HICP: строк с неразборчивой датой: %d", stats.HICPInvalidDates)
	}
	if stats.RateInvalidDates > 0 {
		t.logger.Warn("Ставка ЕЦБ: строк с неразборчивой датой: %d", stats.RateInvalidDates)
	}
	if stats.HPIFiltered == 0 {
		t.logger.Warn("После фильтра по unit=%s* не осталось строк HPI", hpiUnitPrefix)
	}
}
