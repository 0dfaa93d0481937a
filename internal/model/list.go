package model

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is returned when an entry or an entry list fails validation.
var ErrInvalidEntry = errors.New("invalid entry")

// EntryList is an ordered sequence of entries.
type EntryList struct {
	Entries []Entry
}

// NewEntryList creates a list from the given entries, keeping their order.
func NewEntryList(entries ...Entry) *EntryList {
	return &EntryList{Entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// IDs returns the internal identifiers in list order.
func (l *EntryList) IDs() []string {
	ids := make([]string, 0, l.Len())
	for _, e := range l.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Validate checks every identifier and their uniqueness.
func (l *EntryList) Validate() error {
	seen := make(map[string]int, l.Len())
	for i, e := range l.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if prev, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: id %q used by entries %d and %d", ErrInvalidEntry, e.ID, prev+1, i+1)
		}
		seen[e.ID] = i
	}
	return nil
}

// WithIndices returns a copy of the list where each entry has
// Index = position + offset + 1. The receiver is left untouched.
func (l *EntryList) WithIndices(offset int) *EntryList {
	out := &EntryList{Entries: make([]Entry, l.Len())}
	for i, e := range l.Entries {
		e.Index = i + offset + 1
		out.Entries[i] = e
	}
	return out
}
