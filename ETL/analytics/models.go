package analytics

import (
	"errors"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

var (
	// ErrUnknownColumn столбец не является числовым столбцом обогащённой таблицы
	ErrUnknownColumn = errors.New("неизвестный столбец")

	// ErrInsufficientData недостаточно точек для расчёта
	ErrInsufficientData = errors.New("недостаточно данных для расчёта")
)

// DefaultECBPivot квартал начала повышения ставок ЕЦБ
var DefaultECBPivot = models.QuarterKey{Year: 2022, Quarter: models.Q3}

// YearRange включительный диапазон лет. Нулевая граница означает отсутствие ограничения.
type YearRange struct {
	From int
	To   int
}

// Contains сообщает, попадает ли год в диапазон
func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}

// CountryRanking показатели страны для рейтинга
type CountryRanking struct {
	Country        string   `json:"country"`
	AvgHPI         *float64 `json:"avg_hpi"`
	Volatility     *float64 `json:"volatility"`
	LastYear       int      `json:"last_year,omitempty"`
	LastYearAvgHPI *float64 `json:"last_year_avg_hpi"`
	Observations   int      `json:"observations"`
}

// CorrelationResult коэффициент корреляции Пирсона между двумя столбцами
type CorrelationResult struct {
	Country string   `json:"country,omitempty"`
	X       string   `json:"x"`
	Y       string   `json:"y"`
	Pairs   int      `json:"pairs"`
	R       *float64 `json:"r"`
}

// ECBImpactResult средние квартальные изменения HPI до и после разворота политики ЕЦБ
type ECBImpactResult struct {
	Country          string   `json:"country,omitempty"`
	PivotYear        int      `json:"pivot_year"`
	PivotQuarter     string   `json:"pivot_quarter"`
	PreECB           *float64 `json:"pre_ecb"`
	PostECB          *float64 `json:"post_ecb"`
	Delta            *float64 `json:"delta"`
	PreObservations  int      `json:"pre_observations"`
	PostObservations int      `json:"post_observations"`
}

// TrendResult линейный тренд HPI страны по номеру квартала
type TrendResult struct {
	Country     string          `json:"country"`
	Slope       float64         `json:"slope"`
	Intercept   float64         `json:"intercept"`
	R2          *float64        `json:"r2"`
	Points      int             `json:"points"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Forecast    []ForecastPoint `json:"forecast"`
}

// ForecastPoint прогноз HPI на квартал
type ForecastPoint struct {
	Year    int     `json:"year"`
	Quarter string  `json:"quarter"`
	HPI     float64 `json:"hpi"`
}
