package entities

import (
	"testing"

	"lifemap-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
)

func TestContactMatchesEmail(t *testing.T) {
	c := NewContact(ContactFields{EmailAddress: "Jane@Example.com"})

	assert.True(t, c.MatchesEmail("jane@example.com"))
	assert.True(t, c.MatchesEmail("JANE@EXAMPLE.COM"))
	assert.False(t, c.MatchesEmail("other@example.com"))
	assert.False(t, c.MatchesEmail(""))

	noEmail := NewContact(ContactFields{FirstName: "Jane"})
	assert.False(t, noEmail.MatchesEmail("jane@example.com"))
}

func TestContactMatchesName(t *testing.T) {
	c := NewContact(ContactFields{FirstName: "Jane", LastName: "Doe"})

	assert.True(t, c.MatchesName("jane", "DOE"))
	assert.False(t, c.MatchesName("Jane", "Smith"))
	assert.False(t, c.MatchesName("First Name", "Last Name"))
	assert.False(t, c.MatchesName("", ""))

	empty := NewContact(ContactFields{})
	assert.False(t, empty.MatchesName("", ""))
}

func TestContactApply(t *testing.T) {
	original := NewContact(ContactFields{
		FirstName:    "Jane",
		LastName:     "Doe",
		EmailAddress: "jane@example.com",
		PhoneNumber:  "111",
		Notes:        valueobjects.NewNotes("old notes"),
	})

	t.Run("non-empty fields win, empty fields keep stored values", func(t *testing.T) {
		updated := original.Apply(ContactPatch{
			PhoneNumber: "222",
			Notes:       valueobjects.AbsentNotes(),
		})

		assert.Equal(t, "222", updated.PhoneNumber())
		assert.Equal(t, "Jane", updated.FirstName())
		assert.Equal(t, "jane@example.com", updated.EmailAddress())
		assert.Equal(t, "old notes", updated.Notes().Value())
		assert.Equal(t, original.ID(), updated.ID())
	})

	t.Run("receiver is not mutated", func(t *testing.T) {
		_ = original.Apply(ContactPatch{PhoneNumber: "999"})
		assert.Equal(t, "111", original.PhoneNumber())
	})

	t.Run("explicit empty notes clear", func(t *testing.T) {
		updated := original.Apply(ContactPatch{Notes: valueobjects.EmptyNotes()})
		assert.False(t, updated.Notes().HasContent())
	})
}
