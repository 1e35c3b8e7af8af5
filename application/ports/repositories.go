// Package ports defines the interfaces between the application layer and
// infrastructure. Storage is whole-collection snapshots keyed by user id:
// every successful mutation is followed by a full write, never a delta.
package ports

import (
	"context"

	"lifemap-backend/domain/core/entities"
)

// ContactRepository persists a user's contact collection as one snapshot
type ContactRepository interface {
	// LoadContacts returns the stored collection, or an empty slice when
	// the user has none yet.
	LoadContacts(ctx context.Context, userID string) ([]*entities.Contact, error)

	// SaveContacts replaces the stored collection with the given one.
	SaveContacts(ctx context.Context, userID string, contacts []*entities.Contact) error
}

// TimelineRepository persists a user's timeline collection as one snapshot
type TimelineRepository interface {
	LoadEvents(ctx context.Context, userID string) ([]*entities.TimelineEvent, error)
	SaveEvents(ctx context.Context, userID string, events []*entities.TimelineEvent) error
}

// User is the stored credentials record
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    string
}

// UserRepository persists credentials and the per-user one-time
// initialized marker
type UserRepository interface {
	// CreateUser stores a new user; a conflict error is returned when the
	// email is already registered.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns the user or a not-found error.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// EnsureInitialized writes the one-time marker for the user and
	// reports whether this was the first time.
	EnsureInitialized(ctx context.Context, userID string) (bool, error)
}
