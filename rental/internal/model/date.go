package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Date is a calendar date with a YYYY-MM-DD wire format. All booking
// intervals are closed on both ends.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, errors.Wrap(err, "parse date")
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	}
	return errors.Errorf("cannot scan %T into Date", src)
}

// DateSequence materializes count consecutive days starting at start. Used
// to build the visible timeline window.
func DateSequence(start Date, count int) []Date {
	if count <= 0 {
		return nil
	}
	days := make([]Date, count)
	for i := 0; i < count; i++ {
		days[i] = start.AddDays(i)
	}
	return days
}

// Overlaps reports whether two closed date intervals intersect. Touching
// endpoints count: a return on day D and a departure on day D occupy the
// vehicle simultaneously. Single-location handover policy; revisit for
// same-day turnaround.
func Overlaps(aStart, aEnd, bStart, bEnd Date) bool {
	return !aStart.After(bEnd.Time) && !bStart.After(aEnd.Time)
}

// Contains reports whether the outer interval fully covers the inner one.
func Contains(outerStart, outerEnd, innerStart, innerEnd Date) bool {
	return !outerStart.After(innerStart.Time) && !outerEnd.Before(innerEnd.Time)
}

// RentalDays is the billed day count: ceil of the day difference, never
// below one.
func RentalDays(departure, ret Date) int {
	diff := ret.Sub(departure.Time)
	days := int(diff.Hours() / 24)
	if diff > time.Duration(days)*24*time.Hour {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}
