package valueobjects

import "strings"

// NotesState distinguishes the three states a notes value can be in. A key
// missing from an update payload (Absent) means "leave the stored notes
// alone"; an explicit empty string (Empty) is a deletion request; anything
// with content after trimming is Present.
type NotesState int

const (
	NotesAbsent NotesState = iota
	NotesEmpty
	NotesPresent
)

// Notes is a value object for a contact's free-text notes field
type Notes struct {
	state NotesState
	value string
}

// AbsentNotes returns the absent (key missing) notes value
func AbsentNotes() Notes {
	return Notes{state: NotesAbsent}
}

// EmptyNotes returns an explicit empty notes value
func EmptyNotes() Notes {
	return Notes{state: NotesEmpty}
}

// NewNotes creates a notes value from a supplied string. Whitespace-only
// input counts as empty, the same as an explicit empty string.
func NewNotes(value string) Notes {
	if strings.TrimSpace(value) == "" {
		return Notes{state: NotesEmpty}
	}
	return Notes{state: NotesPresent, value: value}
}

// NotesFromPointer converts an optional decoded field into a Notes value:
// nil means the key was absent from the payload.
func NotesFromPointer(value *string) Notes {
	if value == nil {
		return AbsentNotes()
	}
	return NewNotes(*value)
}

// State returns the notes state
func (n Notes) State() NotesState {
	return n.state
}

// Value returns the notes text; empty unless the state is Present
func (n Notes) Value() string {
	return n.value
}

// IsAbsent reports whether the notes key was absent
func (n Notes) IsAbsent() bool {
	return n.state == NotesAbsent
}

// HasContent reports whether the notes are present and non-empty after
// trimming
func (n Notes) HasContent() bool {
	return n.state == NotesPresent
}

// Equals checks if two notes values are equal
func (n Notes) Equals(other Notes) bool {
	return n.state == other.state && n.value == other.value
}

// Pointer returns the representation used by JSON and storage DTOs: nil for
// Absent, a pointer to "" for Empty, a pointer to the text for Present.
func (n Notes) Pointer() *string {
	switch n.state {
	case NotesAbsent:
		return nil
	case NotesEmpty:
		empty := ""
		return &empty
	default:
		v := n.value
		return &v
	}
}

// ResolveNotes applies the merge rule between a candidate's notes and the
// stored notes:
//
//  1. candidate with content wins outright;
//  2. candidate present but empty is an explicit clear;
//  3. otherwise stored content is preserved;
//  4. otherwise the field stays absent.
//
// The same rule applies to single updates and batch updates, so an update
// payload that never mentions notes can never wipe stored notes.
func ResolveNotes(candidate, existing Notes) Notes {
	if candidate.HasContent() {
		return candidate
	}
	if candidate.state == NotesEmpty {
		return EmptyNotes()
	}
	if existing.HasContent() {
		return existing
	}
	return AbsentNotes()
}
