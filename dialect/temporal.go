package dialect

import (
	"fmt"
	"strings"
	"time"
)

// TemporalUnit is a portable date/time arithmetic field.
type TemporalUnit int

// Portable temporal units.
const (
	UnitNanosecond TemporalUnit = iota + 1
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
)

var temporalUnitNames = map[TemporalUnit]string{
	UnitNanosecond: "nanosecond",
	UnitSecond:     "second",
	UnitMinute:     "minute",
	UnitHour:       "hour",
	UnitDay:        "day",
	UnitWeek:       "week",
	UnitMonth:      "month",
	UnitQuarter:    "quarter",
	UnitYear:       "year",
}

// String returns the lowercase unit keyword.
func (u TemporalUnit) String() string {
	if s, ok := temporalUnitNames[u]; ok {
		return s
	}
	return "TemporalUnit(?)"
}

// TemporalPrecision selects which fields of a time value a literal carries.
type TemporalPrecision int

// Literal precisions.
const (
	PrecisionDate TemporalPrecision = iota + 1
	PrecisionTime
	PrecisionTimestamp
)

// AppendDateLiteral appends a DATE literal for t to b.
func AppendDateLiteral(b *strings.Builder, t time.Time) {
	b.WriteString("date '")
	b.WriteString(t.Format("2006-01-02"))
	b.WriteString("'")
}

// AppendTimeLiteral appends a TIME literal for t to b.
func AppendTimeLiteral(b *strings.Builder, t time.Time) {
	b.WriteString("time '")
	b.WriteString(t.Format("15:04:05"))
	b.WriteString("'")
}

// AppendTimestampLiteral appends a TIMESTAMP literal for t to b, including
// fractional seconds when present.
func AppendTimestampLiteral(b *strings.Builder, t time.Time) {
	b.WriteString("timestamp '")
	b.WriteString(t.Format("2006-01-02 15:04:05"))
	if ns := t.Nanosecond(); ns != 0 {
		b.WriteString(strings.TrimRight(fmt.Sprintf(".%09d", ns), "0"))
	}
	b.WriteString("'")
}

// AppendDateTimeLiteral appends a literal for t at the given precision.
// An unknown precision is a programming error and panics.
func AppendDateTimeLiteral(b *strings.Builder, t time.Time, precision TemporalPrecision) {
	switch precision {
	case PrecisionDate:
		AppendDateLiteral(b, t)
	case PrecisionTime:
		AppendTimeLiteral(b, t)
	case PrecisionTimestamp:
		AppendTimestampLiteral(b, t)
	default:
		panic(fmt.Sprintf("dialect: unknown temporal precision %d", precision))
	}
}

// AddMonthsClamped adds months to t, clamping the day-of-month to the last
// day of the target month instead of letting it overflow: January 31 plus
// one month is February 29 in a leap year, not March 2.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) - 1 + months
	y := year + m/12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	target := time.Month(m + 1)
	if last := lastDayOfMonth(y, target); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(y, target, day, hour, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
