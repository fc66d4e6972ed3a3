package domain

import (
	"fmt"
	"time"
)

// periodDateFormat is the wire and display format for fiscal period end dates.
const periodDateFormat = "2006-01-02"

// Period identifies one fiscal reporting interval (a quarter or a year) by
// its end date, normalized to midnight UTC. It is the ordering key for all
// statement data and must be unique within a series.
type Period struct {
	end time.Time
}

// NewPeriod creates a Period from a time, truncating to a UTC date.
func NewPeriod(t time.Time) Period {
	t = t.UTC()
	return Period{end: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParsePeriod parses a fiscal period end date. Accepts YYYY-MM-DD; a bare
// fiscal year (YYYY) maps to December 31 of that year.
func ParsePeriod(s string) (Period, error) {
	if t, err := time.Parse(periodDateFormat, s); err == nil {
		return NewPeriod(t), nil
	}
	if t, err := time.Parse("2006", s); err == nil {
		return NewPeriod(time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)), nil
	}
	return Period{}, fmt.Errorf("invalid fiscal period %q, expected YYYY-MM-DD or YYYY", s)
}

// Time returns the period end date.
func (p Period) Time() time.Time { return p.end }

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool { return p.end.IsZero() }

// Before reports whether p ends before o.
func (p Period) Before(o Period) bool { return p.end.Before(o.end) }

func (p Period) String() string { return p.end.Format(periodDateFormat) }

// MarshalJSON encodes the period as its end date string.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a period from an end date string.
func (p *Period) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid fiscal period JSON %s", s)
	}
	parsed, err := ParsePeriod(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
