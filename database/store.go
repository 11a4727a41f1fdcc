// database/store.go
package database

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// ErrNotLoaded возвращается, пока таблица ни разу не была загружена
var ErrNotLoaded = errors.New("обогащённая таблица ещё не загружена")

// DatasetStore держит в памяти последнюю загруженную обогащённую таблицу
// и перечитывает её при изменении версии источника.
type DatasetStore struct {
	source Source
	logger *utils.ETLLogger

	mu        sync.RWMutex
	loaded    bool
	version   string
	loadedAt  time.Time
	records   []models.EnrichedRecord
	byCountry map[string][]models.EnrichedRecord
	countries []string
}

// NewDatasetStore создает хранилище поверх источника
func NewDatasetStore(source Source, logger *utils.ETLLogger) *DatasetStore {
	return &DatasetStore{source: source, logger: logger}
}

// Reload перечитывает источник, если его версия изменилась.
// Возвращает true, если данные в памяти были заменены.
func (s *DatasetStore) Reload() (bool, error) {
	version, err := s.source.Version()
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	unchanged := s.loaded && version == s.version
	s.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	records, err := s.source.Load()
	if err != nil {
		return false, err
	}

	byCountry := make(map[string][]models.EnrichedRecord)
	for _, r := range records {
		byCountry[r.Country] = append(byCountry[r.Country], r)
	}
	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	s.mu.Lock()
	s.loaded = true
	s.version = version
	s.loadedAt = time.Now().UTC()
	s.records = records
	s.byCountry = byCountry
	s.countries = countries
	s.mu.Unlock()

	s.logger.Info("Загружена обогащённая таблица из %s: %d строк, %d стран", s.source.Name(), len(records), len(countries))
	return true, nil
}

// Records возвращает все строки таблицы. Срез не должен изменяться вызывающим кодом.
func (s *DatasetStore) Records() ([]models.EnrichedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.records, nil
}

// Countries возвращает отсортированный список стран
func (s *DatasetStore) Countries() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.countries, nil
}

// Series возвращает строки одной страны в порядке таблицы
func (s *DatasetStore) Series(country string) ([]models.EnrichedRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false, ErrNotLoaded
	}
	series, ok := s.byCountry[country]
	return series, ok, nil
}

// Info сведения о загруженной версии таблицы
type Info struct {
	Source   string    `json:"source"`
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Rows     int       `json:"rows"`
}

// Info возвращает сведения о текущей версии
func (s *DatasetStore) Info() (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return Info{}, ErrNotLoaded
	}
	return Info{Source: s.source.Name(), Version: s.version, LoadedAt: s.loadedAt, Rows: len(s.records)}, nil
}
