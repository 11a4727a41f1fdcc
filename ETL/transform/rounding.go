package transform

import "github.com/shopspring/decimal"

// ChangePrecision число знаков после запятой в производных изменениях
const ChangePrecision = 2

// roundChange округляет процентное изменение до ChangePrecision знаков.
// Округление идёт по кратчайшей десятичной записи числа, половина от нуля:
// 12.345 -> 12.35, -12.345 -> -12.35.
func roundChange(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(ChangePrecision).Float64()
	return rounded
}
