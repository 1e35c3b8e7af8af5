package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// ContactID is a value object representing a unique contact identifier.
// IDs from import sources are opaque strings and are not required to be
// UUIDs; generated IDs are.
type ContactID struct {
	value string
}

// NewContactID creates a new random ContactID
func NewContactID() ContactID {
	return ContactID{value: uuid.New().String()}
}

// NewContactIDFromString creates a ContactID from an existing string
func NewContactIDFromString(id string) (ContactID, error) {
	if id == "" {
		return ContactID{}, errors.New("contact ID cannot be empty")
	}
	return ContactID{value: id}, nil
}

// String returns the string representation of the ContactID
func (id ContactID) String() string {
	return id.value
}

// Equals checks if two ContactIDs are equal
func (id ContactID) Equals(other ContactID) bool {
	return id.value == other.value
}

// IsZero checks if the ContactID is the zero value
func (id ContactID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ContactID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ContactID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ContactID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
