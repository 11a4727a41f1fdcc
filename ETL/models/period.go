package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Quarter метка квартала: "Q1".."Q4"
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// quarterStartMonth сопоставляет квартал с первым месяцем квартала
var quarterStartMonth = map[Quarter]time.Month{
	Q1: time.January,
	Q2: time.April,
	Q3: time.July,
	Q4: time.October,
}

// Valid сообщает, является ли метка одним из четырёх кварталов
func (q Quarter) Valid() bool {
	_, ok := quarterStartMonth[q]
	return ok
}

// Number возвращает номер квартала (1-4) или 0 для невалидной метки
func (q Quarter) Number() int {
	if !q.Valid() {
		return 0
	}
	return int(q[1] - '0')
}

// StartMonth возвращает первый месяц квартала
func (q Quarter) StartMonth() time.Month {
	return quarterStartMonth[q]
}

// QuarterFromNumber строит метку квартала по номеру 1-4
func QuarterFromNumber(n int) (Quarter, bool) {
	q := Quarter(fmt.Sprintf("Q%d", n))
	return q, q.Valid()
}

// QuarterOfMonth возвращает квартал, которому принадлежит месяц
func QuarterOfMonth(m time.Month) Quarter {
	q, _ := QuarterFromNumber((int(m)-1)/3 + 1)
	return q
}

// ParseQuarter приводит метку квартала к каноническому виду.
// Принимаются "Q1", "q1" и просто "1".
func ParseQuarter(s string) (Quarter, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "Q")
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", false
	}
	return QuarterFromNumber(n)
}

// QuarterKey ключ квартала без страны (используется для ставки ЕЦБ)
type QuarterKey struct {
	Year    int
	Quarter Quarter
}

// QuarterKeyOf возвращает квартал, в который попадает дата
func QuarterKeyOf(t time.Time) QuarterKey {
	return QuarterKey{Year: t.Year(), Quarter: QuarterOfMonth(t.Month())}
}

// Valid сообщает, удалось ли определить период
func (k QuarterKey) Valid() bool {
	return k.Quarter.Valid()
}

// Start возвращает первый день квартала, используется как хронологическое значение
func (k QuarterKey) Start() time.Time {
	return time.Date(k.Year, k.Quarter.StartMonth(), 1, 0, 0, 0, 0, time.UTC)
}

// Before сравнивает два квартала хронологически
func (k QuarterKey) Before(other QuarterKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Quarter.Number() < other.Quarter.Number()
}

func (k QuarterKey) String() string {
	if !k.Valid() {
		return "<no period>"
	}
	return fmt.Sprintf("%d-%s", k.Year, k.Quarter)
}

// PeriodKey канонический ключ (страна, год, квартал) для соединений и группировки
type PeriodKey struct {
	Country string
	QuarterKey
}

func (k PeriodKey) String() string {
	return k.Country + "/" + k.QuarterKey.String()
}

// Next возвращает следующий квартал
func (k QuarterKey) Next() QuarterKey {
	if k.Quarter == Q4 {
		return QuarterKey{Year: k.Year + 1, Quarter: Q1}
	}
	q, _ := QuarterFromNumber(k.Quarter.Number() + 1)
	return QuarterKey{Year: k.Year, Quarter: q}
}
