package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// MaxForecastQuarters предел горизонта прогноза
const MaxForecastQuarters = 20

// HPITrend строит линейную регрессию HPI страны по номеру квартала
// и прогнозирует ahead следующих кварталов.
// Записи должны быть упорядочены хронологически.
func HPITrend(records []models.EnrichedRecord, country string, ahead int) (*TrendResult, error) {
	if ahead < 0 || ahead > MaxForecastQuarters {
		return nil, fmt.Errorf("горизонт прогноза должен быть от 0 до %d, получено %d", MaxForecastQuarters, ahead)
	}

	var xs, ys []float64
	var periods []models.QuarterKey
	for _, r := range records {
		if r.Country != country || !r.Period().Valid() || r.HPI == nil {
			continue
		}
		xs = append(xs, float64(len(xs)))
		ys = append(ys, *r.HPI)
		periods = append(periods, r.Period())
	}

	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: для тренда нужно минимум 2 точки, получено %d", ErrInsufficientData, len(xs))
	}

	// y = intercept + slope*x. Для ряда без разброса R² не определён и остаётся nil.
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	result := &TrendResult{
		Country:     country,
		Slope:       roundValue(slope),
		Intercept:   roundValue(intercept),
		R2:          round(r2, statPrecision),
		Points:      len(xs),
		PeriodStart: periods[0].String(),
		PeriodEnd:   periods[len(periods)-1].String(),
		Forecast:    make([]ForecastPoint, 0, ahead),
	}

	next := periods[len(periods)-1]
	for i := 1; i <= ahead; i++ {
		next = next.Next()
		x := float64(len(xs) - 1 + i)
		result.Forecast = append(result.Forecast, ForecastPoint{
			Year:    next.Year,
			Quarter: string(next.Quarter),
			HPI:     roundValue(intercept + slope*x),
		})
	}

	return result, nil
}
