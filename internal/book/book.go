// Package book implements the in-memory address book: records keyed by
// exact name, and the upcoming-birthdays query over them.
//
// A Book is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package book

import (
	"slices"

	"github.com/smileynet/addressbook/internal/contact"
)

// Book owns every record, keyed by name. Iteration follows the order in
// which names were first added; replacing a record keeps its position.
type Book struct {
	records map[string]*contact.Record
	order   []string
}

// New returns an empty Book.
func New() *Book {
	return &Book{records: make(map[string]*contact.Record)}
}

// AddRecord stores r under its name, replacing any record with that name.
func (b *Book) AddRecord(r *contact.Record) {
	if r == nil {
		return
	}
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Find returns the record stored under name. Names are matched exactly.
func (b *Book) Find(name string) (*contact.Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Deleting an absent name is a no-op.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

// Records returns the records in iteration order.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}
