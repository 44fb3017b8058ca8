package contact

import (
	"fmt"
	"slices"
	"strings"
)

// Record holds one contact: a name fixed at creation, phones in insertion
// order (duplicates allowed), and an optional birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record. The name is stored verbatim.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to raw. Removing an absent phone is a no-op.
func (r *Record) RemovePhone(raw string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return p.digits == raw
	})
}

// EditPhone removes oldRaw and then adds newRaw.
//
// The two steps are not atomic: if newRaw is invalid the error is returned
// and oldRaw is already gone.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	r.RemovePhone(oldRaw)
	return r.AddPhone(newRaw)
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := slices.IndexFunc(r.phones, func(p Phone) bool {
		return p.digits == raw
	})
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// SetBirthday validates raw and replaces any previous birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday returns the birthday, if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// String renders the record on one line, e.g.
// "Contact name: Ann, phones: 0123456789, Birthday: 12.06.2020".
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	s := fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(phones, ", "))
	if r.birthday != nil {
		s += ", Birthday: " + r.birthday.String()
	}
	return s
}
