package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/LilVoxy/housing_macro/ETL/models"
)

// Rankings считает средний HPI, волатильность и средний HPI последнего года по странам.
// Учитываются только строки с периодом, попадающим в диапазон лет.
// Результат упорядочен по убыванию среднего HPI, затем по стране.
func Rankings(records []models.EnrichedRecord, years YearRange) []CountryRanking {
	type countryData struct {
		hpi      []float64
		lastYear int
		byYear   map[int][]float64
	}

	byCountry := make(map[string]*countryData)
	for _, r := range records {
		if !r.Period().Valid() || !years.Contains(r.Year) {
			continue
		}

		data, ok := byCountry[r.Country]
		if !ok {
			data = &countryData{lastYear: r.Year, byYear: make(map[int][]float64)}
			byCountry[r.Country] = data
		}
		if r.Year > data.lastYear {
			data.lastYear = r.Year
		}
		if r.HPI != nil {
			data.hpi = append(data.hpi, *r.HPI)
			data.byYear[r.Year] = append(data.byYear[r.Year], *r.HPI)
		}
	}

	rankings := make([]CountryRanking, 0, len(byCountry))
	for country, data := range byCountry {
		ranking := CountryRanking{
			Country:      country,
			LastYear:     data.lastYear,
			Observations: len(data.hpi),
		}
		ranking.AvgHPI = mean(data.hpi)
		if len(data.hpi) >= 2 {
			ranking.Volatility = round(stat.StdDev(data.hpi, nil), statPrecision)
		}
		ranking.LastYearAvgHPI = mean(data.byYear[data.lastYear])
		rankings = append(rankings, ranking)
	}

	sort.Slice(rankings, func(i, j int) bool {
		a, b := rankings[i].AvgHPI, rankings[j].AvgHPI
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case (a == nil) != (b == nil):
			return a != nil
		}
		return rankings[i].Country < rankings[j].Country
	})

	return rankings
}

// mean среднее с округлением или nil для пустого набора
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	return round(stat.Mean(values, nil), statPrecision)
}
