package models

import (
	"math"
	"strconv"
	"strings"
)

// Float возвращает указатель на значение
func Float(v float64) *float64 {
	return &v
}

// ParseNumber приводит текст к числу. Нечисловое, пустое или бесконечное значение даёт nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseYear приводит год к целому. Допускается запись с дробной частью ("2021.0").
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	v := ParseNumber(s)
	if v == nil || *v != math.Trunc(*v) {
		return 0, false
	}
	return int(*v), true
}

// ParsePeriod приводит год и квартал к ключу квартала.
// При ошибке возвращается пустой ключ (Valid() == false).
func ParsePeriod(year, quarter string) QuarterKey {
	y, ok := ParseYear(year)
	if !ok {
		return QuarterKey{}
	}
	q, ok := ParseQuarter(quarter)
	if !ok {
		return QuarterKey{}
	}
	return QuarterKey{Year: y, Quarter: q}
}

// FormatValue записывает число в кратчайшем точном виде, nil записывается пустой строкой
func FormatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatYear записывает год, пустая строка для неизвестного периода
func FormatYear(k QuarterKey) string {
	if !k.Valid() {
		return ""
	}
	return strconv.Itoa(k.Year)
}

// FormatQuarter записывает метку квартала, пустая строка для неизвестного периода
func FormatQuarter(k QuarterKey) string {
	if !k.Valid() {
		return ""
	}
	return string(k.Quarter)
}
