package contact

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateFormat indicates a date that is not a real calendar date in DD.MM.YYYY form.
var ErrInvalidDateFormat = errors.New("contact: invalid date format")

// DateLayout is the only accepted textual form for dates.
const DateLayout = "02.01.2006"

// Birthday is a calendar date without time of day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw as DD.MM.YYYY.
func NewBirthday(raw string) (Birthday, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return Birthday{}, err
	}
	return Birthday{date: d}, nil
}

// BirthdayOf returns the Birthday falling on the calendar date of t.
func BirthdayOf(t time.Time) Birthday {
	return Birthday{date: Civil(t)}
}

// ParseDate parses raw strictly as DD.MM.YYYY and returns midnight UTC of that day.
// time.Parse alone tolerates a signed year, so the shape is checked first.
func ParseDate(raw string) (time.Time, error) {
	if !hasDateShape(raw) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil || d.Year() < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return d, nil
}

func hasDateShape(raw string) bool {
	if len(raw) != len(DateLayout) {
		return false
	}
	for i := 0; i < len(raw); i++ {
		switch i {
		case 2, 5:
			if raw[i] != '.' {
				return false
			}
		default:
			if raw[i] < '0' || raw[i] > '9' {
				return false
			}
		}
	}
	return true
}

// Civil truncates t to its calendar date at midnight UTC, dropping the zone.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Year returns the birth year.
func (b Birthday) Year() int { return b.date.Year() }

// Month returns the birth month.
func (b Birthday) Month() time.Month { return b.date.Month() }

// Day returns the day of the month.
func (b Birthday) Day() int { return b.date.Day() }

// Time returns the date at midnight UTC.
func (b Birthday) Time() time.Time { return b.date }

// Equal reports whether both birthdays fall on the same date.
func (b Birthday) Equal(o Birthday) bool { return b.date.Equal(o.date) }

// String renders the date as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(DateLayout) }
