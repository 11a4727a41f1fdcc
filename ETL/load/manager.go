package load

import (
	"fmt"
	"time"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// LoadManager отвечает за управление процессом сохранения результатов.
// Первый загрузчик основной (CSV), остальные дополнительные приёмники.
type LoadManager struct {
	logger  *utils.ETLLogger
	loaders []Loader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(logger *utils.ETLLogger, loaders ...Loader) *LoadManager {
	return &LoadManager{
		logger:  logger,
		loaders: loaders,
	}
}

// Loaders возвращает подключённые загрузчики
func (m *LoadManager) Loaders() []Loader {
	return m.loaders
}

// LoadMerged выполняет фазу Load первой стадии
func (m *LoadManager) LoadMerged(records []models.MergedRecord) error {
	return m.load("объединённой таблицы", func(l Loader) error {
		return l.LoadMerged(records)
	})
}

// LoadEnriched выполняет фазу Load второй стадии
func (m *LoadManager) LoadEnriched(records []models.EnrichedRecord) error {
	return m.load("обогащённой таблицы", func(l Loader) error {
		return l.LoadEnriched(records)
	})
}

// load вызывает загрузчики по порядку и останавливается на первой ошибке
func (m *LoadManager) load(what string, fn func(Loader) error) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (сохранение %s)", what)

	for _, loader := range m.loaders {
		m.logger.Debug("Сохранение %s: %s", what, loader.Name())
		if err := fn(loader); err != nil {
			m.logger.Error("Ошибка при сохранении %s (%s): %v", what, loader.Name(), err)
			return fmt.Errorf("ошибка при сохранении %s (%s): %w", what, loader.Name(), err)
		}
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))
	return nil
}
