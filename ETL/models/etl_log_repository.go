package models

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MySQLETLLogRepository реализация ETLLogRepository для MySQL
type MySQLETLLogRepository struct {
	db *sql.DB
}

// NewMySQLETLLogRepository создает новый экземпляр MySQLETLLogRepository
func NewMySQLETLLogRepository(db *sql.DB) *MySQLETLLogRepository {
	return &MySQLETLLogRepository{
		db: db,
	}
}

// CreateETLLogTable создает таблицу для логирования ETL процесса, если она не существует
func (r *MySQLETLLogRepository) CreateETLLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		rows_merged INT DEFAULT 0,
		rows_enriched INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLETLLogRepository) CreateLogEntry(startTime time.Time) (int, error) {
	result, err := r.db.Exec(`INSERT INTO etl_run_log (start_time, status) VALUES (?, 'in_progress')`, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// executionSeconds считает длительность запуска по времени начала из БД
func (r *MySQLETLLogRepository) executionSeconds(id int, endTime time.Time) (float64, error) {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}
	return endTime.Sub(startTime).Seconds(), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, rowsMerged, rowsEnriched int) error {
	executionTime, err := r.executionSeconds(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'success',
		rows_merged = ?,
		rows_enriched = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	if _, err = r.db.Exec(query, endTime, rowsMerged, rowsEnriched, executionTime, id); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	executionTime, err := r.executionSeconds(id, endTime)
	if err != nil {
		return err
	}

	query := `
	UPDATE etl_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	if _, err = r.db.Exec(query, endTime, errorMessage, executionTime, id); err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MySQLETLLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status,
		rows_merged, rows_enriched,
		IFNULL(error_message, ''), execution_time_seconds
	FROM etl_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var log ETLRunLog
	err := r.db.QueryRow(query).Scan(
		&log.ID, &log.StartTime, &log.EndTime, &log.Status,
		&log.RowsMerged, &log.RowsEnriched,
		&log.ErrorMessage, &log.ExecutionTimeSeconds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске ETL: %w", err)
	}

	return &log, nil
}

// MemoryETLLogRepository хранит журнал запусков в памяти процесса.
// Используется, когда выгрузка в OLAP отключена.
type MemoryETLLogRepository struct {
	mu   sync.Mutex
	runs []ETLRunLog
}

// NewMemoryETLLogRepository создает пустой журнал в памяти
func NewMemoryETLLogRepository() *MemoryETLLogRepository {
	return &MemoryETLLogRepository{}
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MemoryETLLogRepository) CreateLogEntry(startTime time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := len(r.runs) + 1
	r.runs = append(r.runs, ETLRunLog{ID: id, StartTime: startTime, Status: RunStatusInProgress})
	return id, nil
}

func (r *MemoryETLLogRepository) entry(id int) (*ETLRunLog, error) {
	if id < 1 || id > len(r.runs) {
		return nil, fmt.Errorf("запись о запуске ETL %d не найдена", id)
	}
	return &r.runs[id-1], nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MemoryETLLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, rowsMerged, rowsEnriched int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.entry(id)
	if err != nil {
		return err
	}
	run.EndTime = endTime
	run.Status = RunStatusSuccess
	run.RowsMerged = rowsMerged
	run.RowsEnriched = rowsEnriched
	run.ExecutionTimeSeconds = endTime.Sub(run.StartTime).Seconds()
	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MemoryETLLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := r.entry(id)
	if err != nil {
		return err
	}
	run.EndTime = endTime
	run.Status = RunStatusFailed
	run.ErrorMessage = errorMessage
	run.ExecutionTimeSeconds = endTime.Sub(run.StartTime).Seconds()
	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MemoryETLLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.runs) - 1; i >= 0; i-- {
		if r.runs[i].Status == RunStatusSuccess {
			run := r.runs[i]
			return &run, nil
		}
	}
	return nil, nil
}

// Runs возвращает копию всех записей журнала
func (r *MemoryETLLogRepository) Runs() []ETLRunLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]ETLRunLog(nil), r.runs...)
}
