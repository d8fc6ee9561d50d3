package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a calendar date in local time. Flags start on a Day.
//
// A stored date that is not YYYY-MM-DD is kept verbatim so a hand-edited
// file still loads; such a Day only ever renders as the stored text.
type Day struct {
	time.Time

	raw string
}

// DayOf truncates t to midnight of its local calendar day.
func DayOf(t time.Time) Day {
	t = t.Local()
	return Day{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)}
}

// Today returns the current local Day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(v string) (Day, error) {
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("ledger: invalid day %q: %w", v, err)
	}
	return Day{Time: t}, nil
}

// SameDay reports whether both days fall on the same calendar date.
func (d Day) SameDay(then Day) bool {
	return d.String() == then.String()
}

// Equal reports whether both days hold the same date or the same stored text.
func (d Day) Equal(o Day) bool {
	return d.raw == o.raw && d.Time.Equal(o.Time)
}

func (d Day) String() string {
	if d.raw != "" {
		return d.raw
	}
	if d.IsZero() {
		return ""
	}
	return d.Format(layoutISO)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(v)
	if err != nil {
		*d = Day{raw: v}
		return nil
	}
	*d = parsed
	return nil
}
