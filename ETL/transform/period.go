package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// observationDateLayouts форматы дат месячных и дневных рядов
var observationDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006M01",
}

// parseHPIPeriod разбирает квартальную метку вида "2021-Q1"
func parseHPIPeriod(label string) (models.QuarterKey, bool) {
	yearPart, quarterPart, ok := strings.Cut(strings.TrimSpace(label), "-Q")
	if !ok {
		return models.QuarterKey{}, false
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return models.QuarterKey{}, false
	}
	n, err := strconv.Atoi(quarterPart)
	if err != nil {
		return models.QuarterKey{}, false
	}
	quarter, ok := models.QuarterFromNumber(n)
	if !ok {
		return models.QuarterKey{}, false
	}

	return models.QuarterKey{Year: year, Quarter: quarter}, true
}

// parseObservationDate определяет квартал по месячной или дневной дате
func parseObservationDate(value string) (models.QuarterKey, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.QuarterKey{}, false
	}
	for _, layout := range observationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.QuarterKeyOf(t), true
		}
	}
	return models.QuarterKey{}, false
}
