package analytics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// ECBImpact сравнивает среднее квартальное изменение HPI до квартала pivot и начиная с него.
// Пустая страна означает все страны.
func ECBImpact(records []models.EnrichedRecord, country string, pivot models.QuarterKey) ECBImpactResult {
	var pre, post []float64
	for _, r := range records {
		if country != "" && r.Country != country {
			continue
		}
		if !r.Period().Valid() || r.HPIQoQ == nil {
			continue
		}
		if r.Period().Before(pivot) {
			pre = append(pre, *r.HPIQoQ)
		} else {
			post = append(post, *r.HPIQoQ)
		}
	}

	result := ECBImpactResult{
		Country:          country,
		PivotYear:        pivot.Year,
		PivotQuarter:     string(pivot.Quarter),
		PreObservations:  len(pre),
		PostObservations: len(post),
	}
	if len(pre) > 0 {
		result.PreECB = round(stat.Mean(pre, nil), statPrecision)
	}
	if len(post) > 0 {
		result.PostECB = round(stat.Mean(post, nil), statPrecision)
	}
	if result.PreECB != nil && result.PostECB != nil {
		result.Delta = round(*result.PostECB-*result.PreECB, statPrecision)
	}

	return result
}
