package services

import (
	"testing"

	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedContact(t *testing.T, id string, fields entities.ContactFields) *entities.Contact {
	t.Helper()
	contactID, err := valueobjects.NewContactIDFromString(id)
	require.NoError(t, err)
	return entities.ReconstructContact(contactID, fields)
}

func TestReconcile_MatchingPrecedence(t *testing.T) {
	byEmail := storedContact(t, "c-email", entities.ContactFields{
		FirstName:    "Jane",
		LastName:     "Smith",
		EmailAddress: "jane@example.com",
	})
	byName := storedContact(t, "c-name", entities.ContactFields{
		FirstName: "Jane",
		LastName:  "Doe",
	})
	existing := []*entities.Contact{byEmail, byName}

	tests := []struct {
		name      string
		candidate Candidate
		wantID    string
		insert    bool
	}{
		{
			name: "email wins over a name match on a different record",
			candidate: Candidate{Fields: entities.ContactFields{
				FirstName:    "Jane",
				LastName:     "Doe",
				EmailAddress: "JANE@EXAMPLE.COM",
			}},
			wantID: "c-email",
		},
		{
			name: "name match when candidate has no email",
			candidate: Candidate{Fields: entities.ContactFields{
				FirstName: "jane",
				LastName:  "DOE",
			}},
			wantID: "c-name",
		},
		{
			name: "id match when neither email nor name match",
			candidate: Candidate{
				ID: "c-name",
				Fields: entities.ContactFields{
					FirstName: "Janet",
					LastName:  "Renamed",
				},
			},
			wantID: "c-name",
		},
		{
			name: "no match inserts",
			candidate: Candidate{Fields: entities.ContactFields{
				FirstName:    "Sam",
				LastName:     "Stone",
				EmailAddress: "sam@example.com",
			}},
			insert: true,
		},
		{
			name: "placeholder name pair never matches",
			candidate: Candidate{Fields: entities.ContactFields{
				FirstName: "First Name",
				LastName:  "Last Name",
			}},
			insert: true,
		},
		{
			name: "all-empty name pair never matches",
			candidate: Candidate{Fields: entities.ContactFields{
				PhoneNumber: "555-0100",
			}},
			insert: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile(existing, []Candidate{tt.candidate})
			if tt.insert {
				assert.Empty(t, result.Updates)
				require.Len(t, result.Inserts, 1)
				return
			}
			require.Len(t, result.Updates, 1)
			assert.Empty(t, result.Inserts)
			assert.Equal(t, tt.wantID, result.Updates[0].ID.String())
		})
	}
}

func TestReconcile_MatchesAgainstOriginalCollectionOnly(t *testing.T) {
	// Two candidates with the same unknown email must not match each other:
	// the first insert is not visible to the second candidate.
	candidates := []Candidate{
		{Fields: entities.ContactFields{FirstName: "New", LastName: "Person", EmailAddress: "new@example.com"}},
		{Fields: entities.ContactFields{FirstName: "New", LastName: "Person", EmailAddress: "new@example.com"}},
	}

	result := Reconcile(nil, candidates)
	assert.Empty(t, result.Updates)
	assert.Len(t, result.Inserts, 2)
}

func TestReconcile_DuplicateCandidatesLastWriteWins(t *testing.T) {
	existing := []*entities.Contact{
		storedContact(t, "c1", entities.ContactFields{
			FirstName:    "Jane",
			LastName:     "Doe",
			EmailAddress: "jane@example.com",
		}),
	}

	candidates := []Candidate{
		{Fields: entities.ContactFields{EmailAddress: "jane@example.com", PhoneNumber: "111"}},
		{Fields: entities.ContactFields{EmailAddress: "jane@example.com", PhoneNumber: "222"}},
	}

	result := Reconcile(existing, candidates)
	require.Len(t, result.Updates, 2)

	out := ApplyReconciliation(existing, result)
	require.Len(t, out, 1)
	assert.Equal(t, "222", out[0].PhoneNumber())
}

func TestApplyReconciliation_PreservesOrderAndAppendsInserts(t *testing.T) {
	existing := []*entities.Contact{
		storedContact(t, "a", entities.ContactFields{FirstName: "Ada", LastName: "A"}),
		storedContact(t, "b", entities.ContactFields{FirstName: "Ben", LastName: "B"}),
		storedContact(t, "c", entities.ContactFields{FirstName: "Cleo", LastName: "C"}),
	}

	candidates := []Candidate{
		{Fields: entities.ContactFields{FirstName: "Ben", LastName: "B", PhoneNumber: "555"}},
		{Fields: entities.ContactFields{FirstName: "Dana", LastName: "D"}},
	}

	result := Reconcile(existing, candidates)
	out := ApplyReconciliation(existing, result)

	require.Len(t, out, 4)
	assert.Equal(t, "a", out[0].ID().String())
	assert.Equal(t, "b", out[1].ID().String())
	assert.Equal(t, "555", out[1].PhoneNumber())
	assert.Equal(t, "c", out[2].ID().String())
	assert.Equal(t, "Dana", out[3].FirstName())
}

func TestApplyReconciliation_DoesNotMutateInput(t *testing.T) {
	existing := []*entities.Contact{
		storedContact(t, "a", entities.ContactFields{FirstName: "Ada", LastName: "A"}),
	}

	result := Reconcile(existing, []Candidate{
		{Fields: entities.ContactFields{FirstName: "Ada", LastName: "A", PhoneNumber: "999"}},
	})
	out := ApplyReconciliation(existing, result)

	assert.Equal(t, "", existing[0].PhoneNumber())
	assert.Equal(t, "999", out[0].PhoneNumber())
	assert.NotSame(t, existing[0], out[0])
}

func TestReconcile_ReimportOfExportIsIdempotent(t *testing.T) {
	existing := []*entities.Contact{
		storedContact(t, "c1", entities.ContactFields{
			FirstName:    "Jane",
			LastName:     "Doe",
			EmailAddress: "jane@example.com",
			Notes:        valueobjects.NewNotes("met at conference"),
		}),
		storedContact(t, "c2", entities.ContactFields{
			FirstName: "Sam",
			LastName:  "Stone",
		}),
	}

	// A re-import carries every stored field, notes included.
	candidates := make([]Candidate, 0, len(existing))
	for _, c := range existing {
		candidates = append(candidates, Candidate{ID: c.ID().String(), Fields: c.Fields()})
	}

	result := Reconcile(existing, candidates)
	assert.Len(t, result.Updates, 2)
	assert.Empty(t, result.Inserts)

	out := ApplyReconciliation(existing, result)
	require.Len(t, out, 2)
	for i := range existing {
		assert.Equal(t, existing[i].ID().String(), out[i].ID().String())
		assert.Equal(t, existing[i].Fields(), out[i].Fields())
	}
}

func TestReconcile_NotesMergeRules(t *testing.T) {
	tests := []struct {
		name      string
		stored    valueobjects.Notes
		candidate valueobjects.Notes
		want      valueobjects.Notes
	}{
		{
			name:      "absent candidate notes never wipe stored notes",
			stored:    valueobjects.NewNotes("keep me"),
			candidate: valueobjects.AbsentNotes(),
			want:      valueobjects.NewNotes("keep me"),
		},
		{
			name:      "explicit empty clears stored notes",
			stored:    valueobjects.NewNotes("old"),
			candidate: valueobjects.EmptyNotes(),
			want:      valueobjects.EmptyNotes(),
		},
		{
			name:      "candidate content wins over stored content",
			stored:    valueobjects.NewNotes("old"),
			candidate: valueobjects.NewNotes("new"),
			want:      valueobjects.NewNotes("new"),
		},
		{
			name:      "both absent stays absent",
			stored:    valueobjects.AbsentNotes(),
			candidate: valueobjects.AbsentNotes(),
			want:      valueobjects.AbsentNotes(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := []*entities.Contact{
				storedContact(t, "c1", entities.ContactFields{
					FirstName:    "Jane",
					LastName:     "Doe",
					EmailAddress: "jane@example.com",
					Notes:        tt.stored,
				}),
			}
			result := Reconcile(existing, []Candidate{
				{Fields: entities.ContactFields{
					EmailAddress: "jane@example.com",
					Notes:        tt.candidate,
				}},
			})
			out := ApplyReconciliation(existing, result)
			require.Len(t, out, 1)
			assert.True(t, tt.want.Equals(out[0].Notes()),
				"got state %v value %q", out[0].Notes().State(), out[0].Notes().Value())
		})
	}
}

func TestCandidate_Contact(t *testing.T) {
	t.Run("keeps source-supplied id", func(t *testing.T) {
		c := Candidate{ID: "source-42", Fields: entities.ContactFields{FirstName: "Sam"}}
		assert.Equal(t, "source-42", c.Contact().ID().String())
	})

	t.Run("generates an id when the source has none", func(t *testing.T) {
		c := Candidate{Fields: entities.ContactFields{FirstName: "Sam"}}
		assert.NotEmpty(t, c.Contact().ID().String())
	})
}
