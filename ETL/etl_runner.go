package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/LilVoxy/housing_macro/ETL/config"
	"github.com/LilVoxy/housing_macro/ETL/extractors"
	"github.com/LilVoxy/housing_macro/ETL/load"
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/transform"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// ETLRunner связывает фазы Extract, Transform и Load обеих стадий
type ETLRunner struct {
	config      config.ETLConfig
	olapDB      *sql.DB
	logger      *utils.ETLLogger
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	etlLogRepo  models.ETLLogRepository
}

// NewETLRunner создает новый экземпляр ETLRunner.
// Подключение к OLAP открывается только если выгрузка в MySQL включена.
func NewETLRunner(etlConfig config.ETLConfig, logger *utils.ETLLogger) (*ETLRunner, error) {
	logger.Info("Инициализация ETL Runner")

	paths := etlConfig.Paths
	loaders := []load.Loader{load.NewCSVLoader(paths.MergedPath(), paths.EnrichedPath(), logger)}
	if etlConfig.Export.XLSX {
		loaders = append(loaders, load.NewXLSXLoader(paths.MergedPath(), paths.EnrichedPath(), logger))
	}

	runner := &ETLRunner{
		config:      etlConfig,
		logger:      logger,
		extractor:   extractors.NewExtractor(paths, logger),
		transformer: transform.NewTransformer(logger),
		etlLogRepo:  models.NewMemoryETLLogRepository(),
	}

	if etlConfig.OLAP.Enabled {
		db, err := config.ConnectOLAP(etlConfig.OLAP)
		if err != nil {
			return nil, err
		}
		runner.olapDB = db

		mysqlLoader := load.NewMySQLLoader(db, logger)
		if err := mysqlLoader.EnsureTables(); err != nil {
			db.Close()
			return nil, err
		}
		loaders = append(loaders, mysqlLoader)

		// Журнал запусков хранится в OLAP
		logRepo := models.NewMySQLETLLogRepository(db)
		if err := logRepo.CreateETLLogTable(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ошибка при создании таблицы логов ETL: %w", err)
		}
		runner.etlLogRepo = logRepo
	}

	runner.loadManager = load.NewLoadManager(logger, loaders...)
	return runner, nil
}

// Close закрывает соединение с OLAP базой данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	if r.olapDB != nil {
		if err := r.olapDB.Close(); err != nil {
			r.logger.Error("Ошибка при закрытии соединения с OLAP: %v", err)
		}
	}
}

// ExecuteMerge выполняет первую стадию: извлечение источников, объединение, запись таблицы
func (r *ETLRunner) ExecuteMerge() (int, error) {
	extractedData, err := r.extractor.Extract()
	if err != nil {
		return 0, fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	result, err := r.transformer.Merge(extractedData)
	if err != nil {
		return 0, fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	if err := r.loadManager.LoadMerged(result.Records); err != nil {
		return 0, fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	return len(result.Records), nil
}

// ExecuteEnrich выполняет вторую стадию по сохранённой объединённой таблице
func (r *ETLRunner) ExecuteEnrich() (int, error) {
	rows, err := r.extractor.ExtractMerged()
	if err != nil {
		return 0, fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	result, err := r.transformer.Enrich(rows)
	if err != nil {
		return 0, fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	if err := r.loadManager.LoadEnriched(result.Records); err != nil {
		return 0, fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	return len(result.Records), nil
}

// ExecuteETL выполняет обе стадии подряд и записывает результат в журнал запусков
func (r *ETLRunner) ExecuteETL() error {
	startTime := time.Now()
	r.logger.LogETLStart()

	// Создаем запись в журнале ETL
	logID, err := r.etlLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале ETL: %w", err)
	}

	if lastRun, err := r.etlLogRepo.GetLastSuccessfulRun(); err != nil {
		r.logger.Warn("Не удалось получить информацию о последнем успешном запуске: %v", err)
	} else if lastRun != nil {
		r.logger.Debug("Последний успешный запуск: %v, строк %d", lastRun.EndTime, lastRun.RowsEnriched)
	}

	// 1. Объединение источников
	rowsMerged, err := r.ExecuteMerge()
	if err != nil {
		r.logger.Error("Ошибка на стадии объединения: %v", err)
		r.updateETLRunLogFailure(logID, err)
		return fmt.Errorf("ошибка на стадии объединения: %w", err)
	}

	// 2. Расчёт изменений
	rowsEnriched, err := r.ExecuteEnrich()
	if err != nil {
		r.logger.Error("Ошибка на стадии расчёта изменений: %v", err)
		r.updateETLRunLogFailure(logID, err)
		return fmt.Errorf("ошибка на стадии расчёта изменений: %w", err)
	}

	// Обновляем запись в журнале с информацией об успешном выполнении
	if err := r.etlLogRepo.UpdateLogEntrySuccess(logID, time.Now(), rowsMerged, rowsEnriched); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}

	r.logger.LogETLComplete(startTime, rowsMerged, rowsEnriched)
	return nil
}

// updateETLRunLogFailure обновляет запись в журнале ETL при ошибке
func (r *ETLRunner) updateETLRunLogFailure(logID int, runErr error) {
	if err := r.etlLogRepo.UpdateLogEntryFailure(logID, time.Now(), runErr.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

// StartScheduler запускает ETL сразу и затем с интервалом RunInterval до отмены контекста
func (r *ETLRunner) StartScheduler(ctx context.Context) error {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
	return nil
}
