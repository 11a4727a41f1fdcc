package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// IsNumericColumn сообщает, есть ли у обогащённой таблицы такой числовой столбец
func IsNumericColumn(name string) bool {
	_, ok := models.EnrichedRecord{}.Column(name)
	return ok
}

// Correlation считает коэффициент Пирсона между двумя столбцами по строкам,
// где оба значения заданы. Пустая страна означает все страны.
func Correlation(records []models.EnrichedRecord, country, x, y string) (*CorrelationResult, error) {
	for _, col := range []string{x, y} {
		if !IsNumericColumn(col) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}

	var xs, ys []float64
	for _, r := range records {
		if country != "" && r.Country != country {
			continue
		}
		xv, _ := r.Column(x)
		yv, _ := r.Column(y)
		if xv == nil || yv == nil {
			continue
		}
		xs = append(xs, *xv)
		ys = append(ys, *yv)
	}

	result := &CorrelationResult{Country: country, X: x, Y: y, Pairs: len(xs)}
	if len(xs) >= 2 {
		// Нулевая дисперсия даёт NaN, round превращает его в nil
		result.R = round(stat.Correlation(xs, ys, nil), statPrecision)
	}

	return result, nil
}
