package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Таблицы OLAP базы данных
const (
	MergedTable   = "quarterly_merged"
	EnrichedTable = "quarterly_enriched"
)

// MySQLLoader выгружает таблицы в OLAP базу данных MySQL.
// Каждая загрузка полностью заменяет содержимое таблицы в одной транзакции.
type MySQLLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLLoader создает новый экземпляр MySQLLoader
func NewMySQLLoader(db *sql.DB, logger *utils.ETLLogger) *MySQLLoader {
	return &MySQLLoader{
		db:     db,
		logger: logger,
	}
}

// Name возвращает имя приёмника
func (l *MySQLLoader) Name() string { return "mysql" }

// EnsureTables создаёт таблицы, если их ещё нет
func (l *MySQLLoader) EnsureTables() error {
	changeColumns := ""
	for _, col := range models.EnrichedColumns[len(models.MergedColumns):] {
		changeColumns += fmt.Sprintf("\t\t%s DOUBLE NULL,\n", col)
	}

	queries := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			row_num INT NOT NULL PRIMARY KEY,
			country VARCHAR(16) NOT NULL,
			year INT NULL,
			quarter CHAR(2) NULL,
			hpi DOUBLE NULL,
			inflation DOUBLE NULL,
			interest_rate DOUBLE NULL,
			loaded_at DATETIME(6) NOT NULL
		)`, MergedTable),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			row_num INT NOT NULL PRIMARY KEY,
			country VARCHAR(16) NOT NULL,
			year INT NULL,
			quarter CHAR(2) NULL,
			hpi DOUBLE NULL,
			inflation DOUBLE NULL,
			interest_rate DOUBLE NULL,
%s			loaded_at DATETIME(6) NOT NULL,
			INDEX idx_country_period (country, year, quarter)
		)`, EnrichedTable, changeColumns),
	}

	for _, query := range queries {
		if _, err := l.db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблиц OLAP: %w", err)
		}
	}
	return nil
}

// LoadMerged заменяет объединённую таблицу
func (l *MySQLLoader) LoadMerged(records []models.MergedRecord) error {
	args := make([][]interface{}, 0, len(records))
	for _, r := range records {
		args = append(args, mergedArgs(r))
	}
	return l.replaceTable(MergedTable, models.MergedColumns, args)
}

// LoadEnriched заменяет обогащённую таблицу
func (l *MySQLLoader) LoadEnriched(records []models.EnrichedRecord) error {
	args := make([][]interface{}, 0, len(records))
	for _, r := range records {
		row := mergedArgs(r.MergedRecord)
		for _, col := range models.EnrichedColumns[len(models.MergedColumns):] {
			v, _ := r.Column(col)
			row = append(row, v)
		}
		args = append(args, row)
	}
	return l.replaceTable(EnrichedTable, models.EnrichedColumns, args)
}

// mergedArgs значения базовых столбцов. Пустые значения передаются как NULL.
func mergedArgs(r models.MergedRecord) []interface{} {
	var year, quarter interface{}
	if r.Period().Valid() {
		year, quarter = r.Year, string(r.Quarter)
	}
	return []interface{}{r.Country, year, quarter, r.HPI, r.Inflation, r.InterestRate}
}

// replaceTable удаляет прежние строки и вставляет новые в одной транзакции
func (l *MySQLLoader) replaceTable(table string, columns []string, rows [][]interface{}) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки таблицы %s (всего: %d)", table, len(rows))

	// Начинаем транзакцию
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("ошибка при очистке таблицы %s: %w", table, err)
	}

	placeholders := "?, ?"
	columnList := "row_num, loaded_at"
	for _, col := range columns {
		columnList += ", " + col
		placeholders += ", ?"
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, columnList, placeholders))
	if err != nil {
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	loadedAt := time.Now().UTC()
	for i, row := range rows {
		values := append([]interface{}{i + 1, loadedAt}, row...)
		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("ошибка при вставке строки %d в %s: %w", i+1, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка таблицы %s завершена. Длительность: %v", table, time.Since(startTime))
	return nil
}
