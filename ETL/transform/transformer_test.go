package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

func hpiRow(geo, period, value string) models.HPIObservation {
	return models.HPIObservation{Unit: "I15_Q", Geo: geo, TimePeriod: period, Value: value}
}

func hicpRow(geo, period, value string) models.HICPObservation {
	return models.HICPObservation{Unit: "RCH_A", Coicop: "CP00", Geo: geo, TimePeriod: period, Value: value}
}

func key(country string, year int, q models.Quarter) models.PeriodKey {
	return models.PeriodKey{Country: country, QuarterKey: models.QuarterKey{Year: year, Quarter: q}}
}

func TestParseHPIPeriod(t *testing.T) {
	tests := []struct {
		label string
		want  models.QuarterKey
		ok    bool
	}{
		{"2021-Q1", models.QuarterKey{Year: 2021, Quarter: models.Q1}, true},
		{" 1999-Q4 ", models.QuarterKey{Year: 1999, Quarter: models.Q4}, true},
		{"2021-Q5", models.QuarterKey{}, false},
		{"2021Q1", models.QuarterKey{}, false},
		{"abcd-Q1", models.QuarterKey{}, false},
		{"", models.QuarterKey{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := parseHPIPeriod(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseObservationDate(t *testing.T) {
	tests := []struct {
		value string
		want  models.QuarterKey
		ok    bool
	}{
		{"2021-01", models.QuarterKey{Year: 2021, Quarter: models.Q1}, true},
		{"2021-03-31", models.QuarterKey{Year: 2021, Quarter: models.Q1}, true},
		{"2021-04-01", models.QuarterKey{Year: 2021, Quarter: models.Q2}, true},
		{"2022-09-14T00:00:00Z", models.QuarterKey{Year: 2022, Quarter: models.Q3}, true},
		{"2020M12", models.QuarterKey{Year: 2020, Quarter: models.Q4}, true},
		{"not a date", models.QuarterKey{}, false},
		{"", models.QuarterKey{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := parseObservationDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundChange(t *testing.T) {
	assert.Equal(t, 12.35, roundChange(12.345))
	assert.Equal(t, 12.34, roundChange(12.344))
	assert.Equal(t, -12.35, roundChange(-12.345))
	assert.Equal(t, 0.01, roundChange(0.005))
	assert.Equal(t, 10.0, roundChange(10))
}

func TestPercentChange(t *testing.T) {
	got := PercentChange(models.Float(110), models.Float(100))
	require.NotNil(t, got)
	assert.Equal(t, 10.0, *got)

	got = PercentChange(models.Float(-0.4), models.Float(-0.5))
	require.NotNil(t, got)
	assert.Equal(t, -20.0, *got)

	assert.Nil(t, PercentChange(nil, models.Float(100)))
	assert.Nil(t, PercentChange(models.Float(100), nil))
	assert.Nil(t, PercentChange(models.Float(100), models.Float(0)))
}

func TestNormalizeHPI(t *testing.T) {
	var stats models.MergeStats
	points := normalizeHPI([]models.HPIObservation{
		hpiRow("DE", "2021-Q1", "105.2"),
		{Unit: "RCH_Q", Geo: "DE", TimePeriod: "2021-Q1", Value: "1.3"},
		{Unit: "I15_A_AVG", Geo: "FR", TimePeriod: "2021-Q1", Value: ":"},
		hpiRow("IT", "bad", "99"),
	}, &stats)

	require.Len(t, points, 3)
	assert.Equal(t, key("DE", 2021, models.Q1), points[0].key)
	require.NotNil(t, points[0].value)
	assert.Equal(t, 105.2, *points[0].value)

	// Нечисловое значение не удаляет строку
	assert.Equal(t, "FR", points[1].key.Country)
	assert.Nil(t, points[1].value)

	assert.False(t, points[2].key.Valid())

	assert.Equal(t, 4, stats.HPIRows)
	assert.Equal(t, 3, stats.HPIFiltered)
	assert.Equal(t, 1, stats.HPIInvalidPeriods)
	assert.Equal(t, 1, stats.HPIInvalidValues)
}

func TestNormalizeHICP(t *testing.T) {
	var stats models.MergeStats
	inflation := normalizeHICP([]models.HICPObservation{
		hicpRow("DE", "2021-01", "2.0"),
		hicpRow("DE", "2021-02", "2.2"),
		hicpRow("DE", "2021-03", "2.4"),
		hicpRow("FR", "2021-04", ""),
		hicpRow("FR", "2021-05", ":"),
		{Unit: "RCH_A", Coicop: "CP01", Geo: "DE", TimePeriod: "2021-01", Value: "9.9"},
		{Unit: "RCH_M", Coicop: "CP00", Geo: "DE", TimePeriod: "2021-01", Value: "9.9"},
		hicpRow("DE", "garbage", "1.0"),
	}, &stats)

	require.Len(t, inflation, 2)

	de, ok := inflation[key("DE", 2021, models.Q1)]
	require.True(t, ok)
	require.NotNil(t, de)
	assert.InDelta(t, 2.2, *de, 1e-9)

	// Все значения квартала пустые: ключ есть, среднее пустое
	fr, ok := inflation[key("FR", 2021, models.Q2)]
	require.True(t, ok)
	assert.Nil(t, fr)

	assert.Equal(t, 8, stats.HICPRows)
	assert.Equal(t, 6, stats.HICPFiltered)
	assert.Equal(t, 1, stats.HICPInvalidDates)
	assert.Equal(t, 2, stats.HICPQuarters)
}

func TestNormalizeRates(t *testing.T) {
	var stats models.MergeStats
	rates := normalizeRates([]models.RateObservation{
		{ObservationDate: "2022-07-01", Rate: "-0.5"},
		{ObservationDate: "2022-09-14", Rate: "0.75"},
		{ObservationDate: "2022-10-01", Rate: "0.75"},
		{ObservationDate: "2022-10-02", Rate: "."},
		{ObservationDate: "", Rate: "1"},
	}, &stats)

	require.Len(t, rates, 2)
	q3 := rates[models.QuarterKey{Year: 2022, Quarter: models.Q3}]
	require.NotNil(t, q3)
	assert.InDelta(t, 0.125, *q3, 1e-9)
	q4 := rates[models.QuarterKey{Year: 2022, Quarter: models.Q4}]
	require.NotNil(t, q4)
	assert.Equal(t, 0.75, *q4)
	assert.Equal(t, 1, stats.RateInvalidDates)
}

func TestMerge(t *testing.T) {
	data := &models.ExtractedData{
		HPI: []models.HPIObservation{
			hpiRow("DE", "2021-Q1", "105.2"),
			hpiRow("DE", "2021-Q2", "106"),
			hpiRow("FR", "2021-Q1", "101"),
			{Unit: "RCH_A", Geo: "DE", TimePeriod: "2021-Q1", Value: "5"},
			hpiRow("NL", "?", "99"),
		},
		HICP: []models.HICPObservation{
			hicpRow("DE", "2021-01", "2.0"),
			hicpRow("DE", "2021-02", "2.2"),
			hicpRow("DE", "2021-03", "2.4"),
			// Страна без HPI в результат не попадает
			hicpRow("ES", "2021-01", "3.0"),
		},
		Rates: []models.RateObservation{
			{ObservationDate: "2021-01-01", Rate: "-0.5"},
			{ObservationDate: "2021-02-01", Rate: "-0.5"},
		},
	}

	result, err := NewTransformer(utils.NewNopLogger()).Merge(data)
	require.NoError(t, err)

	records := result.Records
	require.Len(t, records, 4, "число строк равно числу строк HPI после фильтра")
	assert.Equal(t, result.Stats.HPIFiltered, len(records))

	de := records[0]
	assert.Equal(t, key("DE", 2021, models.Q1), de.Key())
	assert.Equal(t, 105.2, *de.HPI)
	assert.InDelta(t, 2.2, *de.Inflation, 1e-9)
	assert.Equal(t, -0.5, *de.InterestRate)

	// Ставки за второй квартал нет
	assert.Nil(t, records[1].Inflation)
	assert.Nil(t, records[1].InterestRate)

	// Ставка общая для всех стран
	assert.Nil(t, records[2].Inflation)
	require.NotNil(t, records[2].InterestRate)
	assert.Equal(t, -0.5, *records[2].InterestRate)

	// Строка без периода сохраняется и ни с чем не соединяется
	assert.Equal(t, "NL", records[3].Country)
	assert.False(t, records[3].Period().Valid())
	assert.Nil(t, records[3].InterestRate)

	for _, r := range records {
		assert.NotEqual(t, "ES", r.Country)
	}

	_, err = NewTransformer(utils.NewNopLogger()).Merge(nil)
	assert.Error(t, err)
}

func TestMergeKeysUnique(t *testing.T) {
	data := &models.ExtractedData{
		HPI: []models.HPIObservation{
			hpiRow("DE", "2021-Q1", "100"),
			hpiRow("DE", "2021-Q2", "101"),
			hpiRow("FR", "2021-Q1", "100"),
		},
		HICP: []models.HICPObservation{
			hicpRow("DE", "2021-01", "1"),
			hicpRow("DE", "2021-01", "3"),
			hicpRow("DE", "2021-02", "2"),
		},
	}

	result, err := NewTransformer(utils.NewNopLogger()).Merge(data)
	require.NoError(t, err)

	seen := make(map[models.PeriodKey]bool)
	for _, r := range result.Records {
		assert.False(t, seen[r.Key()], "повтор ключа %s", r.Key())
		seen[r.Key()] = true
	}
	assert.Equal(t, 1, result.Stats.HICPQuarters)
	assert.InDelta(t, 2.0, *result.Records[0].Inflation, 1e-9)
}

func mergedRow(country, year, quarter, hpi, inflation, rate string) models.MergedRow {
	return models.MergedRow{Country: country, Year: year, Quarter: quarter, HPI: hpi, Inflation: inflation, InterestRate: rate}
}

func TestEnrich(t *testing.T) {
	rows := []models.MergedRow{
		// Порядок намеренно перемешан
		mergedRow("DE", "2021", "Q3", "121", "3", "0"),
		mergedRow("FR", "2021", "Q1", "200", "1", "-0.5"),
		mergedRow("DE", "2020", "Q4", "100", "1", "-0.5"),
		mergedRow("DE", "2021", "Q1", "110", "2", "-0.5"),
		mergedRow("DE", "2021.0", "2", "110", "", "-0.5"),
		mergedRow("DE", "2021", "Q4", "133.1", "4", ""),
		mergedRow("DE", "", "", "1", "1", "1"),
	}

	result, err := NewTransformer(utils.NewNopLogger()).Enrich(rows)
	require.NoError(t, err)

	records := result.Records
	require.Len(t, records, len(rows))
	assert.Equal(t, models.EnrichStats{Rows: 7, Countries: 2, InvalidPeriods: 1}, result.Stats)

	var periods []string
	for _, r := range records {
		periods = append(periods, r.Key().String())
	}
	assert.Equal(t, []string{
		"DE/2020-Q4", "DE/2021-Q1", "DE/2021-Q2", "DE/2021-Q3", "DE/2021-Q4", "DE/<no period>", "FR/2021-Q1",
	}, periods)

	// Первая строка страны не имеет предшественника
	for _, m := range models.Metrics {
		assert.Nil(t, records[0].QoQ(m))
		assert.Nil(t, records[6].QoQ(m))
	}

	// 100 -> 110
	require.NotNil(t, records[1].HPIQoQ)
	assert.Equal(t, 10.0, *records[1].HPIQoQ)
	assert.Equal(t, 100.0, *records[1].InflationQoQ)
	assert.Equal(t, 0.0, *records[1].InterestRateQoQ)

	// Пустая инфляция в предыдущем квартале
	assert.Equal(t, 0.0, *records[2].HPIQoQ)
	assert.Nil(t, records[2].InflationQoQ)
	assert.Nil(t, records[3].InflationQoQ)

	assert.Equal(t, 10.0, *records[3].HPIQoQ)
	assert.Equal(t, -100.0, *records[3].InterestRateQoQ)
	assert.Equal(t, 10.0, *records[4].HPIQoQ)

	// Годовое изменение определено с пятой позиции
	for i := 0; i < 4; i++ {
		for _, m := range models.Metrics {
			assert.Nil(t, records[i].YoY(m), "позиция %d", i)
		}
	}
	require.NotNil(t, records[4].HPIYoY)
	assert.Equal(t, 33.1, *records[4].HPIYoY)
	assert.Equal(t, 300.0, *records[4].InflationYoY)
	// Ставки нет: оба изменения пустые
	assert.Nil(t, records[4].InterestRate)
	assert.Nil(t, records[4].InterestRateQoQ)
	assert.Nil(t, records[4].InterestRateYoY)

	// Строка без периода не участвует в ряду
	invalid := records[5]
	for _, m := range models.Metrics {
		assert.Nil(t, invalid.QoQ(m))
		assert.Nil(t, invalid.YoY(m))
	}
}

func TestEnrichPositionalYoY(t *testing.T) {
	// Пропущенный квартал сдвигает годовой лаг
	merged := []models.MergedRecord{
		{Country: "DE", Year: 2020, Quarter: models.Q1, HPI: models.Float(100)},
		{Country: "DE", Year: 2020, Quarter: models.Q2, HPI: models.Float(101)},
		{Country: "DE", Year: 2020, Quarter: models.Q4, HPI: models.Float(102)},
		{Country: "DE", Year: 2021, Quarter: models.Q1, HPI: models.Float(103)},
		{Country: "DE", Year: 2021, Quarter: models.Q2, HPI: models.Float(125)},
	}

	result, err := NewTransformer(utils.NewNopLogger()).EnrichRecords(merged)
	require.NoError(t, err)

	last := result.Records[4]
	require.NotNil(t, last.HPIYoY)
	assert.Equal(t, 25.0, *last.HPIYoY)
}

func TestEnrichDeterministic(t *testing.T) {
	rows := []models.MergedRow{
		mergedRow("IT", "2021", "Q2", "103.7", "1.1", "-0.5"),
		mergedRow("IT", "2021", "Q1", "101.3", "0.7", "-0.5"),
		mergedRow("AT", "2021", "Q1", "130.9", "1.5", "-0.5"),
	}

	tr := NewTransformer(utils.NewNopLogger())
	first, err := tr.Enrich(rows)
	require.NoError(t, err)
	second, err := tr.Enrich(rows)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, "AT", first.Records[0].Country)
	require.NotNil(t, first.Records[2].HPIQoQ)
	assert.Equal(t, 2.37, *first.Records[2].HPIQoQ)
}
