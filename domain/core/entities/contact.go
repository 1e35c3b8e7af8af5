package entities

import (
	"strings"

	"lifemap-backend/domain/core/valueobjects"
)

// Placeholder names that appear in import templates. A row carrying this
// literal pair must never be treated as a real person during matching.
const (
	PlaceholderFirstName = "first name"
	PlaceholderLastName  = "last name"
)

// Contact is the entity representing one person a user has encountered
type Contact struct {
	id              valueobjects.ContactID
	firstName       string
	lastName        string
	emailAddress    string
	phoneNumber     string
	linkedInProfile string
	dateAdded       string
	dateEdited      string
	source          string
	notes           valueobjects.Notes
}

// ContactFields groups the mutable fields of a contact
type ContactFields struct {
	FirstName       string
	LastName        string
	EmailAddress    string
	PhoneNumber     string
	LinkedInProfile string
	DateAdded       string
	DateEdited      string
	Source          string
	Notes           valueobjects.Notes
}

// NewContact creates a contact with a freshly generated id. Missing names
// are kept as empty strings; imports are lenient.
func NewContact(fields ContactFields) *Contact {
	return ReconstructContact(valueobjects.NewContactID(), fields)
}

// ReconstructContact creates a contact with a known id, e.g. from storage
// or from an import source that supplies its own ids.
func ReconstructContact(id valueobjects.ContactID, fields ContactFields) *Contact {
	return &Contact{
		id:              id,
		firstName:       fields.FirstName,
		lastName:        fields.LastName,
		emailAddress:    fields.EmailAddress,
		phoneNumber:     fields.PhoneNumber,
		linkedInProfile: fields.LinkedInProfile,
		dateAdded:       fields.DateAdded,
		dateEdited:      fields.DateEdited,
		source:          fields.Source,
		notes:           fields.Notes,
	}
}

// ID returns the contact's unique identifier
func (c *Contact) ID() valueobjects.ContactID {
	return c.id
}

// FirstName returns the contact's first name
func (c *Contact) FirstName() string {
	return c.firstName
}

// LastName returns the contact's last name
func (c *Contact) LastName() string {
	return c.lastName
}

// EmailAddress returns the contact's email address
func (c *Contact) EmailAddress() string {
	return c.emailAddress
}

// PhoneNumber returns the contact's phone number
func (c *Contact) PhoneNumber() string {
	return c.phoneNumber
}

// LinkedInProfile returns the contact's LinkedIn profile URL
func (c *Contact) LinkedInProfile() string {
	return c.linkedInProfile
}

// DateAdded returns the MM/YYYY the contact was added
func (c *Contact) DateAdded() string {
	return c.dateAdded
}

// DateEdited returns the MM/YYYY the contact was last edited
func (c *Contact) DateEdited() string {
	return c.dateEdited
}

// Source returns the source tag, e.g. "LinkedIn" or "Uploaded"
func (c *Contact) Source() string {
	return c.source
}

// Notes returns the contact's notes value
func (c *Contact) Notes() valueobjects.Notes {
	return c.notes
}

// Fields returns a copy of the contact's mutable fields
func (c *Contact) Fields() ContactFields {
	return ContactFields{
		FirstName:       c.firstName,
		LastName:        c.lastName,
		EmailAddress:    c.emailAddress,
		PhoneNumber:     c.phoneNumber,
		LinkedInProfile: c.linkedInProfile,
		DateAdded:       c.dateAdded,
		DateEdited:      c.dateEdited,
		Source:          c.source,
		Notes:           c.notes,
	}
}

// MatchesEmail reports whether the contact's email matches the given one,
// case-insensitively. Empty emails never match.
func (c *Contact) MatchesEmail(email string) bool {
	if c.emailAddress == "" || email == "" {
		return false
	}
	return strings.EqualFold(c.emailAddress, email)
}

// MatchesName reports whether the contact's name matches the given pair,
// case-insensitively. The template placeholder pair and the all-empty pair
// never match.
func (c *Contact) MatchesName(firstName, lastName string) bool {
	if IsPlaceholderName(firstName, lastName) {
		return false
	}
	if firstName == "" && lastName == "" {
		return false
	}
	return strings.EqualFold(c.firstName, firstName) && strings.EqualFold(c.lastName, lastName)
}

// IsPlaceholderName reports whether the pair is the literal template
// placeholder ("First Name", "Last Name"), case-insensitively.
func IsPlaceholderName(firstName, lastName string) bool {
	return strings.EqualFold(firstName, PlaceholderFirstName) &&
		strings.EqualFold(lastName, PlaceholderLastName)
}

// ContactPatch carries a partial update. String fields win over the stored
// value only when non-empty; notes follow the three-state rule; the id is
// never part of a patch.
type ContactPatch struct {
	FirstName       string
	LastName        string
	EmailAddress    string
	PhoneNumber     string
	LinkedInProfile string
	DateAdded       string
	DateEdited      string
	Source          string
	Notes           valueobjects.Notes
}

// Apply merges the patch into the contact and returns a fresh contact.
// The receiver is never mutated, so callers can rely on reference identity
// to detect change.
func (c *Contact) Apply(patch ContactPatch) *Contact {
	merged := &Contact{
		id:              c.id,
		firstName:       preferNonEmpty(patch.FirstName, c.firstName),
		lastName:        preferNonEmpty(patch.LastName, c.lastName),
		emailAddress:    preferNonEmpty(patch.EmailAddress, c.emailAddress),
		phoneNumber:     preferNonEmpty(patch.PhoneNumber, c.phoneNumber),
		linkedInProfile: preferNonEmpty(patch.LinkedInProfile, c.linkedInProfile),
		dateAdded:       preferNonEmpty(patch.DateAdded, c.dateAdded),
		dateEdited:      preferNonEmpty(patch.DateEdited, c.dateEdited),
		source:          preferNonEmpty(patch.Source, c.source),
		notes:           valueobjects.ResolveNotes(patch.Notes, c.notes),
	}
	return merged
}

func preferNonEmpty(candidate, existing string) string {
	if candidate != "" {
		return candidate
	}
	return existing
}
