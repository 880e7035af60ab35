package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money is a non-negative-by-convention decimal amount in the source currency (USD).
type Money struct {
	d decimal.Decimal
}

// ParseMoney parses a decimal amount such as "10", "10.5" or "1299.99".
// Negative or malformed amounts are rejected with a ValidationError.
func ParseMoney(field, s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, &ValidationError{Field: field, Reason: "amount is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &ValidationError{Field: field, Reason: "not a decimal number: " + s}
	}
	if d.IsNegative() {
		return Money{}, &ValidationError{Field: field, Reason: "amount must not be negative"}
	}
	return Money{d: d}, nil
}

// MoneyFromInt returns a whole amount.
func MoneyFromInt(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// MoneyFromDecimal wraps d.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Times multiplies the amount by a unit count.
func (m Money) Times(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Whole returns the integer part of the amount, truncating any cents.
func (m Money) Whole() int64 { return m.d.IntPart() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) Decimal() decimal.Decimal { return m.d }

// String formats the amount without trailing zeros ("10", "10.5").
func (m Money) String() string { return m.d.String() }

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.d.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	d, err := decimal.NewFromString(string(text))
	if err != nil {
		return err
	}
	m.d = d
	return nil
}

// DateLayout is the ISO calendar date format used for input and storage.
const DateLayout = "2006-01-02"

// CalendarDate is a day without time of day or zone.
type CalendarDate struct {
	t time.Time
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(field, s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, &ValidationError{Field: field, Reason: "date is required (YYYY-MM-DD)"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, &ValidationError{Field: field, Reason: "not a calendar date (YYYY-MM-DD): " + s}
	}
	return CalendarDate{t: t}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// NewDate builds a calendar date; out-of-range values normalise like time.Date.
func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d CalendarDate) IsZero() bool { return d.t.IsZero() }
func (d CalendarDate) Before(o CalendarDate) bool { return d.t.Before(o.t) }
func (d CalendarDate) After(o CalendarDate) bool { return d.t.After(o.t) }
func (d CalendarDate) Equal(o CalendarDate) bool { return d.t.Equal(o.t) }
func (d CalendarDate) AddDays(n int) CalendarDate { return CalendarDate{t: d.t.AddDate(0, 0, n)} }

// Within reports whether d lies in [from, to], both ends inclusive.
func (d CalendarDate) Within(from, to CalendarDate) bool {
	return !d.Before(from) && !d.After(to)
}

func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = CalendarDate{}
		return nil
	}
	t, err := time.Parse(DateLayout, string(text))
	if err != nil {
		return err
	}
	d.t = t
	return nil
}
