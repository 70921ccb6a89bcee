package date

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// DayLayout is the wire and document format for a Day
const DayLayout = "2006-01-02"

// Day is a calendar date without a time-of-day component
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay constructs a Day from its components
func NewDay(year int, month time.Month, day int) Day {
	return Day{Year: year, Month: month, Day: day}
}

// DayOfTime truncates a time.Time down to its calendar date
func DayOfTime(t time.Time) Day {
	year, month, day := t.Date()
	return Day{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date
func Today() Day {
	return DayOfTime(time.Now())
}

// AddDays returns the Day n days later
func (d Day) AddDays(n int) Day {
	return DayOfTime(d.At(Clock{}).AddDate(0, 0, n))
}

// At combines the Day with a time-of-day into a single time.Time
func (d Day) At(c Clock) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, time.Local)
}

// IsZero reports whether the Day has no value
func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON renders the Day as "2006-01-02"
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses "2006-01-02" into a Day
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Day{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("day is not a json string: %s", s)
	}

	parsed, err := time.Parse(DayLayout, s[1:len(s)-1])
	if err != nil {
		return errors.Wrap(err, "could not parse day")
	}

	*d = DayOfTime(parsed)
	return nil
}
