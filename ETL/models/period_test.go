package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuarter(t *testing.T) {
	tests := []struct {
		in   string
		want Quarter
		ok   bool
	}{
		{"Q1", Q1, true},
		{"q3", Q3, true},
		{" 4 ", Q4, true},
		{"Q5", "", false},
		{"Q0", "", false},
		{"", "", false},
		{"QX", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseQuarter(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestQuarterOfMonth(t *testing.T) {
	assert.Equal(t, Q1, QuarterOfMonth(time.January))
	assert.Equal(t, Q1, QuarterOfMonth(time.March))
	assert.Equal(t, Q2, QuarterOfMonth(time.April))
	assert.Equal(t, Q3, QuarterOfMonth(time.September))
	assert.Equal(t, Q4, QuarterOfMonth(time.October))
	assert.Equal(t, Q4, QuarterOfMonth(time.December))
}

func TestQuarterKeyStartAndOrder(t *testing.T) {
	k := QuarterKey{Year: 2021, Quarter: Q3}
	assert.Equal(t, time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC), k.Start())
	assert.Equal(t, 3, k.Quarter.Number())

	assert.True(t, QuarterKey{Year: 2020, Quarter: Q4}.Before(QuarterKey{Year: 2021, Quarter: Q1}))
	assert.True(t, QuarterKey{Year: 2021, Quarter: Q1}.Before(QuarterKey{Year: 2021, Quarter: Q2}))
	assert.False(t, k.Before(k))
	assert.False(t, QuarterKey{}.Valid())

	assert.Equal(t, QuarterKey{Year: 2021, Quarter: Q4}, k.Next())
	assert.Equal(t, QuarterKey{Year: 2022, Quarter: Q1}, k.Next().Next())
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, QuarterKey{Year: 2021, Quarter: Q2}, ParsePeriod("2021", "Q2"))
	assert.Equal(t, QuarterKey{Year: 2021, Quarter: Q2}, ParsePeriod("2021.0", "2"))
	assert.False(t, ParsePeriod("", "Q2").Valid())
	assert.False(t, ParsePeriod("2021.5", "Q2").Valid())
	assert.False(t, ParsePeriod("2021", "").Valid())
}

func TestParseNumber(t *testing.T) {
	v := ParseNumber(" 105.2 ")
	require.NotNil(t, v)
	assert.Equal(t, 105.2, *v)

	assert.Nil(t, ParseNumber(""))
	assert.Nil(t, ParseNumber(":"))
	assert.Nil(t, ParseNumber("12.3 p"))
	assert.Nil(t, ParseNumber("NaN"))
	assert.Nil(t, ParseNumber("Inf"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "105.2", FormatValue(Float(105.2)))
	assert.Equal(t, "10", FormatValue(Float(10)))
	assert.Equal(t, "-0.5", FormatValue(Float(-0.5)))
}

func TestRecordValues(t *testing.T) {
	r := EnrichedRecord{
		MergedRecord: MergedRecord{Country: "DE", Year: 2021, Quarter: Q1, HPI: Float(105.2)},
		HPIQoQ:       Float(1.5),
		InflationYoY: Float(-2.25),
	}

	assert.Equal(t, []string{"DE", "2021", "Q1", "105.2", "", ""}, r.MergedValues())
	assert.Equal(t, []string{"DE", "2021", "Q1", "105.2", "", "", "1.5", "", "", "", "-2.25", ""}, r.EnrichedValues())
	assert.Len(t, EnrichedColumns, 12)
	assert.Len(t, MergedColumns, 6)

	v, ok := r.Column("hpi_qoq_change")
	require.True(t, ok)
	assert.Equal(t, 1.5, *v)

	_, ok = r.Column("unknown")
	assert.False(t, ok)

	noPeriod := MergedRecord{Country: "DE", HPI: Float(1)}
	assert.Equal(t, []string{"DE", "", "", "1", "", ""}, noPeriod.MergedValues())
}
