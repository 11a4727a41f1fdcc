// database/source.go
package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/LilVoxy/housing_macro/ETL/extractors"
	"github.com/LilVoxy/housing_macro/ETL/load"
	"github.com/LilVoxy/housing_macro/ETL/models"
)

// Source источник обогащённой таблицы для дашборда
type Source interface {
	Name() string
	// Version меняется при каждом обновлении данных источника
	Version() (string, error)
	Load() ([]models.EnrichedRecord, error)
}

// FileSource читает обогащённую таблицу из CSV-файла
type FileSource struct {
	path string
}

// NewFileSource создает источник на основе файла
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file:" + s.path }

// Version строится из времени изменения и размера файла
func (s *FileSource) Version() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()), nil
}

func (s *FileSource) Load() ([]models.EnrichedRecord, error) {
	return extractors.NewEnrichedExtractor(s.path).ExtractEnriched()
}

// OLAPSource читает обогащённую таблицу, выгруженную ETL в MySQL
type OLAPSource struct {
	db *sql.DB
}

// NewOLAPSource создает источник на основе OLAP базы данных
func NewOLAPSource(db *sql.DB) *OLAPSource {
	return &OLAPSource{db: db}
}

func (s *OLAPSource) Name() string { return "mysql:" + load.EnrichedTable }

// Version строится из числа строк, времени последней выгрузки и контрольной суммы строк.
// Контрольная сумма различает две выгрузки одного размера, сделанные в одну и ту же секунду.
func (s *OLAPSource) Version() (string, error) {
	var count int
	var loadedAt sql.NullTime
	var checksum int64
	if err := s.db.QueryRow(versionQuery()).Scan(&count, &loadedAt, &checksum); err != nil {
		return "", fmt.Errorf("ошибка при получении версии таблицы %s: %w", load.EnrichedTable, err)
	}

	var loadedNanos int64
	if loadedAt.Valid {
		loadedNanos = loadedAt.Time.UnixNano()
	}
	return fmt.Sprintf("%d-%d-%08x", count, loadedNanos, checksum), nil
}

// versionQuery считает CRC32 каждой строки и объединяет их через BIT_XOR
func versionQuery() string {
	fields := []string{"row_num"}
	for _, col := range models.EnrichedColumns {
		fields = append(fields, fmt.Sprintf("COALESCE(%s, 'NULL')", col))
	}
	return fmt.Sprintf("SELECT COUNT(*), MAX(loaded_at), BIT_XOR(CRC32(CONCAT_WS('|', %s))) FROM %s",
		strings.Join(fields, ", "), load.EnrichedTable)
}

// Load читает строки в порядке выгрузки
func (s *OLAPSource) Load() ([]models.EnrichedRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY row_num",
		strings.Join(models.EnrichedColumns, ", "), load.EnrichedTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении таблицы %s: %w", load.EnrichedTable, err)
	}
	defer rows.Close()

	changeColumns := models.EnrichedColumns[len(models.MergedColumns):]

	var records []models.EnrichedRecord
	for rows.Next() {
		var country string
		var year sql.NullInt64
		var quarter sql.NullString
		values := make([]sql.NullFloat64, 3+len(changeColumns))

		dest := []interface{}{&country, &year, &quarter}
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании строки %s: %w", load.EnrichedTable, err)
		}

		rec := models.EnrichedRecord{MergedRecord: models.MergedRecord{
			Country:      country,
			HPI:          nullFloat(values[0]),
			Inflation:    nullFloat(values[1]),
			InterestRate: nullFloat(values[2]),
		}}
		if year.Valid && quarter.Valid {
			if q, ok := models.ParseQuarter(quarter.String); ok {
				rec.Year, rec.Quarter = int(year.Int64), q
			}
		}
		for i, m := range models.Metrics {
			rec.SetChanges(m, nullFloat(values[3+i]), nullFloat(values[3+len(models.Metrics)+i]))
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при чтении таблицы %s: %w", load.EnrichedTable, err)
	}
	return records, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return models.Float(v.Float64)
}
