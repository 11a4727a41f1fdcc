package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// statPrecision знаков после запятой в статистиках дашборда
const statPrecision = 3

// round округляет до places знаков, NaN и бесконечность дают nil
func round(v float64, places int32) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	rounded, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return &rounded
}

// roundValue округляет конечное значение
func roundValue(v float64) float64 {
	if r := round(v, statPrecision); r != nil {
		return *r
	}
	return v
}
