package services

import (
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
)

// Candidate is a contact-like record from an import source that has not
// been reconciled into the store yet. An empty ID means the source did not
// supply one.
type Candidate struct {
	ID     string
	Fields entities.ContactFields
}

// Patch converts the candidate's fields into a patch for a matched contact.
// The id is deliberately not part of the patch: a matched record keeps its
// stored id.
func (c Candidate) Patch() entities.ContactPatch {
	return entities.ContactPatch{
		FirstName:       c.Fields.FirstName,
		LastName:        c.Fields.LastName,
		EmailAddress:    c.Fields.EmailAddress,
		PhoneNumber:     c.Fields.PhoneNumber,
		LinkedInProfile: c.Fields.LinkedInProfile,
		DateAdded:       c.Fields.DateAdded,
		DateEdited:      c.Fields.DateEdited,
		Source:          c.Fields.Source,
		Notes:           c.Fields.Notes,
	}
}

// Contact converts an unmatched candidate into a new contact, keeping a
// source-supplied id or generating a fresh one.
func (c Candidate) Contact() *entities.Contact {
	if c.ID != "" {
		id, err := valueobjects.NewContactIDFromString(c.ID)
		if err == nil {
			return entities.ReconstructContact(id, c.Fields)
		}
	}
	return entities.NewContact(c.Fields)
}

// Update pairs a matched contact's id with the patch to merge into it
type Update struct {
	ID    valueobjects.ContactID
	Patch entities.ContactPatch
}

// ReconcileResult is the deterministic outcome of matching a candidate
// batch against an existing collection
type ReconcileResult struct {
	Updates []Update
	Inserts []*entities.Contact
}

// Reconcile matches each candidate against the existing collection and
// decides update-vs-insert. It is pure: neither input is mutated, and the
// result is deterministic given the same inputs and ordering.
//
// Matching order per candidate, first match wins:
//
//  1. case-insensitive email, when both sides have one;
//  2. case-insensitive (firstName, lastName) pair, excluding the template
//     placeholder pair and the all-empty pair;
//  3. id equality, when the candidate supplies an id;
//  4. no match: insert as a new contact.
//
// Every candidate is matched against the ORIGINAL collection, never against
// the batch's own intermediate output, so duplicate candidates targeting
// the same record each produce an update and the later one wins when the
// patches are applied in order.
func Reconcile(existing []*entities.Contact, candidates []Candidate) ReconcileResult {
	var result ReconcileResult

	for _, cand := range candidates {
		matched := matchCandidate(existing, cand)
		if matched == nil {
			result.Inserts = append(result.Inserts, cand.Contact())
			continue
		}
		result.Updates = append(result.Updates, Update{
			ID:    matched.ID(),
			Patch: cand.Patch(),
		})
	}

	return result
}

// matchCandidate finds the first existing contact the candidate refers to
func matchCandidate(existing []*entities.Contact, cand Candidate) *entities.Contact {
	if cand.Fields.EmailAddress != "" {
		for _, contact := range existing {
			if contact.MatchesEmail(cand.Fields.EmailAddress) {
				return contact
			}
		}
	}

	for _, contact := range existing {
		if contact.MatchesName(cand.Fields.FirstName, cand.Fields.LastName) {
			return contact
		}
	}

	if cand.ID != "" {
		for _, contact := range existing {
			if contact.ID().String() == cand.ID {
				return contact
			}
		}
	}

	return nil
}

// ApplyReconciliation produces a new collection with every update patch
// merged into its record and the inserts appended at the end. The relative
// order of pre-existing records is preserved and the input slice is never
// mutated, so callers can rely on reference identity to trigger
// persistence and refresh.
func ApplyReconciliation(store []*entities.Contact, result ReconcileResult) []*entities.Contact {
	merged := make(map[string]*entities.Contact, len(result.Updates))

	for _, update := range result.Updates {
		key := update.ID.String()
		base := merged[key]
		if base == nil {
			base = findByID(store, update.ID)
			if base == nil {
				continue
			}
		}
		merged[key] = base.Apply(update.Patch)
	}

	out := make([]*entities.Contact, 0, len(store)+len(result.Inserts))
	for _, contact := range store {
		if m, ok := merged[contact.ID().String()]; ok {
			out = append(out, m)
		} else {
			out = append(out, contact)
		}
	}

	return append(out, result.Inserts...)
}

func findByID(store []*entities.Contact, id valueobjects.ContactID) *entities.Contact {
	for _, contact := range store {
		if contact.ID().Equals(id) {
			return contact
		}
	}
	return nil
}
