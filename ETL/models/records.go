package models

// Metric имя базового показателя объединённой таблицы
type Metric string

const (
	MetricHPI          Metric = "hpi"
	MetricInflation    Metric = "inflation"
	MetricInterestRate Metric = "interest_rate"
)

// Metrics фиксированный набор показателей, для которых считаются изменения
var Metrics = []Metric{MetricHPI, MetricInflation, MetricInterestRate}

// QoQColumn имя столбца квартального изменения
func (m Metric) QoQColumn() string { return string(m) + "_qoq_change" }

// YoYColumn имя столбца годового изменения
func (m Metric) YoYColumn() string { return string(m) + "_yoy_change" }

// Столбцы сохраняемых таблиц
var (
	MergedColumns = []string{"country", "year", "quarter", "hpi", "inflation", "interest_rate"}

	EnrichedColumns = append(append([]string{}, MergedColumns...),
		MetricHPI.QoQColumn(), MetricInflation.QoQColumn(), MetricInterestRate.QoQColumn(),
		MetricHPI.YoYColumn(), MetricInflation.YoYColumn(), MetricInterestRate.YoYColumn(),
	)
)

// MergedRecord строка объединённой таблицы. nil означает отсутствие значения.
type MergedRecord struct {
	Country      string   `json:"country"`
	Year         int      `json:"year"`
	Quarter      Quarter  `json:"quarter"`
	HPI          *float64 `json:"hpi"`
	Inflation    *float64 `json:"inflation"`
	InterestRate *float64 `json:"interest_rate"`
}

// Period возвращает квартал записи
func (r MergedRecord) Period() QuarterKey {
	return QuarterKey{Year: r.Year, Quarter: r.Quarter}
}

// Key возвращает канонический ключ записи
func (r MergedRecord) Key() PeriodKey {
	return PeriodKey{Country: r.Country, QuarterKey: r.Period()}
}

// Value возвращает значение показателя
func (r MergedRecord) Value(m Metric) *float64 {
	switch m {
	case MetricHPI:
		return r.HPI
	case MetricInflation:
		return r.Inflation
	case MetricInterestRate:
		return r.InterestRate
	}
	return nil
}

// EnrichedRecord объединённая запись с шестью производными изменениями (в процентах)
type EnrichedRecord struct {
	MergedRecord

	HPIQoQ          *float64 `json:"hpi_qoq_change"`
	InflationQoQ    *float64 `json:"inflation_qoq_change"`
	InterestRateQoQ *float64 `json:"interest_rate_qoq_change"`
	HPIYoY          *float64 `json:"hpi_yoy_change"`
	InflationYoY    *float64 `json:"inflation_yoy_change"`
	InterestRateYoY *float64 `json:"interest_rate_yoy_change"`
}

// QoQ возвращает квартальное изменение показателя
func (r EnrichedRecord) QoQ(m Metric) *float64 {
	switch m {
	case MetricHPI:
		return r.HPIQoQ
	case MetricInflation:
		return r.InflationQoQ
	case MetricInterestRate:
		return r.InterestRateQoQ
	}
	return nil
}

// YoY возвращает годовое изменение показателя
func (r EnrichedRecord) YoY(m Metric) *float64 {
	switch m {
	case MetricHPI:
		return r.HPIYoY
	case MetricInflation:
		return r.InflationYoY
	case MetricInterestRate:
		return r.InterestRateYoY
	}
	return nil
}

// SetChanges записывает квартальное и годовое изменение показателя
func (r *EnrichedRecord) SetChanges(m Metric, qoq, yoy *float64) {
	switch m {
	case MetricHPI:
		r.HPIQoQ, r.HPIYoY = qoq, yoy
	case MetricInflation:
		r.InflationQoQ, r.InflationYoY = qoq, yoy
	case MetricInterestRate:
		r.InterestRateQoQ, r.InterestRateYoY = qoq, yoy
	}
}

// Column возвращает числовое значение столбца по имени
func (r EnrichedRecord) Column(name string) (*float64, bool) {
	for _, m := range Metrics {
		switch name {
		case string(m):
			return r.Value(m), true
		case m.QoQColumn():
			return r.QoQ(m), true
		case m.YoYColumn():
			return r.YoY(m), true
		}
	}
	return nil, false
}

// MergedValues возвращает строку объединённой таблицы в порядке MergedColumns
func (r MergedRecord) MergedValues() []string {
	return []string{
		r.Country,
		FormatYear(r.Period()),
		FormatQuarter(r.Period()),
		FormatValue(r.HPI),
		FormatValue(r.Inflation),
		FormatValue(r.InterestRate),
	}
}

// EnrichedValues возвращает строку обогащённой таблицы в порядке EnrichedColumns
func (r EnrichedRecord) EnrichedValues() []string {
	return append(r.MergedValues(),
		FormatValue(r.HPIQoQ),
		FormatValue(r.InflationQoQ),
		FormatValue(r.InterestRateQoQ),
		FormatValue(r.HPIYoY),
		FormatValue(r.InflationYoY),
		FormatValue(r.InterestRateYoY),
	)
}
