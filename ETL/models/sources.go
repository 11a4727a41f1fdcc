package models

// HPIObservation представляет строку исходного файла индекса цен на жильё (Eurostat prc_hpi_q)
type HPIObservation struct {
	Unit       string
	Geo        string
	TimePeriod string // "YYYY-Qn"
	Value      string // OBS_VALUE в исходном виде, приводится к числу при нормализации
}

// HICPObservation представляет строку исходного файла инфляции (Eurostat prc_hicp_manr)
type HICPObservation struct {
	Unit       string
	Coicop     string
	Geo        string
	TimePeriod string // месячная дата, например "2021-01"
	Value      string
}

// RateObservation представляет строку файла ставки ЕЦБ (ставка по депозитной линии)
type RateObservation struct {
	ObservationDate string
	Rate            string
}

// ExtractedData содержит три исходные таблицы, извлечённые из файлов
type ExtractedData struct {
	HPI   []HPIObservation
	HICP  []HICPObservation
	Rates []RateObservation
}

// MergedRow представляет строку сохранённой объединённой таблицы до приведения типов
type MergedRow struct {
	Country      string
	Year         string
	Quarter      string
	HPI          string
	Inflation    string
	InterestRate string
}
