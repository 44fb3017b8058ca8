package book

import (
	"time"

	"github.com/smileynet/addressbook/internal/contact"
)

// WindowDays is the length of the upcoming-birthday window, starting today.
const WindowDays = 7

// Upcoming maps weekday labels to contact names, remembering the order in
// which labels were first filled.
type Upcoming struct {
	days  []string
	names map[string][]string
}

func (u *Upcoming) add(day, name string) {
	if u.names == nil {
		u.names = make(map[string][]string)
	}
	if _, ok := u.names[day]; !ok {
		u.days = append(u.days, day)
	}
	u.names[day] = append(u.names[day], name)
}

// Len returns the number of weekday labels with at least one name.
func (u Upcoming) Len() int {
	return len(u.days)
}

// Days returns the labels in first-filled order.
func (u Upcoming) Days() []string {
	return append([]string(nil), u.days...)
}

// Names returns the names bucketed under day, in book order.
func (u Upcoming) Names(day string) []string {
	return append([]string(nil), u.names[day]...)
}

// Map returns a copy of the label to names mapping.
func (u Upcoming) Map() map[string][]string {
	out := make(map[string][]string, len(u.names))
	for day, names := range u.names {
		out[day] = append([]string(nil), names...)
	}
	return out
}

// UpcomingBirthdays reports which contacts have a birthday within
// WindowDays of today (today included), grouped by the weekday it falls on.
// Birthdays landing on Saturday or Sunday are reported under Monday.
func (b *Book) UpcomingBirthdays(today time.Time) Upcoming {
	today = contact.Civil(today)

	var up Upcoming
	for _, name := range b.order {
		r := b.records[name]
		bd, ok := r.Birthday()
		if !ok {
			continue
		}

		next := occurrence(bd, today.Year())
		if next.Before(today) {
			next = occurrence(bd, today.Year()+1)
		}

		delta := int(next.Sub(today).Hours() / 24)
		if delta >= WindowDays {
			continue
		}

		day := today.AddDate(0, 0, delta).Weekday()
		if day == time.Saturday || day == time.Sunday {
			day = time.Monday
		}
		up.add(day.String(), r.Name())
	}
	return up
}

// occurrence returns the birthday's month and day in year. A 29 February
// birthday falls on 28 February in non-leap years.
func occurrence(bd contact.Birthday, year int) time.Time {
	day := bd.Day()
	if bd.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, bd.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
