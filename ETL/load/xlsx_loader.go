package load

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Имена листов книги
const (
	MergedSheet   = "merged"
	EnrichedSheet = "enriched"
)

// XLSXLoader дублирует таблицы в книги Excel рядом с CSV-файлами
type XLSXLoader struct {
	mergedPath   string
	enrichedPath string
	logger       *utils.ETLLogger
}

// NewXLSXLoader создает новый экземпляр XLSXLoader.
// Пути CSV-файлов переводятся в пути .xlsx в тех же каталогах.
func NewXLSXLoader(mergedCSV, enrichedCSV string, logger *utils.ETLLogger) *XLSXLoader {
	return &XLSXLoader{
		mergedPath:   XLSXPath(mergedCSV),
		enrichedPath: XLSXPath(enrichedCSV),
		logger:       logger,
	}
}

// XLSXPath заменяет расширение файла на .xlsx
func XLSXPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
}

// Name возвращает имя приёмника
func (l *XLSXLoader) Name() string { return "xlsx" }

// LoadMerged записывает объединённую таблицу в книгу
func (l *XLSXLoader) LoadMerged(records []models.MergedRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Country, yearCell(r.Period()), quarterCell(r.Period()),
			numberCell(r.HPI), numberCell(r.Inflation), numberCell(r.InterestRate),
		})
	}
	if err := writeWorkbook(l.mergedPath, MergedSheet, models.MergedColumns, rows); err != nil {
		return err
	}
	l.logger.Debug("Книга Excel записана: %s", l.mergedPath)
	return nil
}

// LoadEnriched записывает обогащённую таблицу в книгу
func (l *XLSXLoader) LoadEnriched(records []models.EnrichedRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		row := []interface{}{
			r.Country, yearCell(r.Period()), quarterCell(r.Period()),
			numberCell(r.HPI), numberCell(r.Inflation), numberCell(r.InterestRate),
		}
		for _, col := range models.EnrichedColumns[len(models.MergedColumns):] {
			v, _ := r.Column(col)
			row = append(row, numberCell(v))
		}
		rows = append(rows, row)
	}
	if err := writeWorkbook(l.enrichedPath, EnrichedSheet, models.EnrichedColumns, rows); err != nil {
		return err
	}
	l.logger.Debug("Книга Excel записана: %s", l.enrichedPath)
	return nil
}

// writeWorkbook создаёт книгу с одним листом: заголовок и строки данных
func writeWorkbook(path, sheet string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", sheet, err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", i, err)
		}
	}

	return writeFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

// numberCell пустое значение оставляет ячейку пустой
func numberCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func yearCell(k models.QuarterKey) interface{} {
	if !k.Valid() {
		return nil
	}
	return k.Year
}

func quarterCell(k models.QuarterKey) interface{} {
	if !k.Valid() {
		return nil
	}
	return string(k.Quarter)
}
