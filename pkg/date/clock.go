package date

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ClockLayout is the wire and document format for a Clock
const ClockLayout = "15:04:05"

// Clock is a time-of-day without a date component
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// EndOfDay is the default deadline time for new assignments
var EndOfDay = Clock{Hour: 23, Minute: 59, Second: 59}

// ClockOfTime extracts the time-of-day of a time.Time
func ClockOfTime(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Split breaks a timestamp into its calendar date and time-of-day components
func Split(t time.Time) (Day, Clock) {
	return DayOfTime(t), ClockOfTime(t)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// MarshalJSON renders the Clock as "15:04:05"
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON parses "15:04:05" into a Clock
func (c *Clock) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*c = Clock{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("clock is not a json string: %s", s)
	}

	parsed, err := time.Parse(ClockLayout, s[1:len(s)-1])
	if err != nil {
		return errors.Wrap(err, "could not parse clock")
	}

	*c = ClockOfTime(parsed)
	return nil
}
