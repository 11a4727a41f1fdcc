package extractors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// utf8BOM метка порядка байтов, которую добавляют выгрузки из Excel
const utf8BOM = "\ufeff"

// csvTable таблица, прочитанная из CSV-файла с заголовком
type csvTable struct {
	path   string
	header map[string]int
	rows   [][]string
}

// readCSVTable читает CSV-файл целиком и проверяет наличие обязательных столбцов.
// Лишние столбцы игнорируются.
func readCSVTable(path string, required ...string) (*csvTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", path, err)
	}
	defer file.Close()

	table, err := parseCSVTable(file, required...)
	if err != nil {
		return nil, fmt.Errorf("файл %s: %w", path, err)
	}
	table.path = path

	return table, nil
}

// parseCSVTable разбирает CSV из потока
func parseCSVTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, models.ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}

	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrMissingColumn, col)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}

	return &csvTable{header: header, rows: rows}, nil
}

// value возвращает значение столбца в строке или пустую строку, если столбца нет
func (t *csvTable) value(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// len возвращает число строк данных
func (t *csvTable) len() int {
	return len(t.rows)
}
