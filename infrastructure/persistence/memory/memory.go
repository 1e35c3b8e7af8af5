// Package memory provides in-memory implementations of the repository
// ports for local development and tests. Snapshots are deep-copied on the
// way in and out so callers cannot alias stored state.
package memory

import (
	"context"
	"sync"

	"lifemap-backend/application/ports"
	"lifemap-backend/domain/core/entities"
	pkgerrors "lifemap-backend/pkg/errors"
)

// ContactRepository keeps contact snapshots in a map keyed by user id
type ContactRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]*entities.Contact

	// SaveCount tracks snapshot writes per user so tests can assert on
	// write batching.
	SaveCount map[string]int

	// FailSaves makes every save return an error when set.
	FailSaves bool
}

// NewContactRepository creates an empty in-memory contact repository
func NewContactRepository() *ContactRepository {
	return &ContactRepository{
		snapshots: make(map[string][]*entities.Contact),
		SaveCount: make(map[string]int),
	}
}

// LoadContacts returns a copy of the stored snapshot
func (r *ContactRepository) LoadContacts(ctx context.Context, userID string) ([]*entities.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.snapshots[userID]
	out := make([]*entities.Contact, len(stored))
	copy(out, stored)
	return out, nil
}

// SaveContacts replaces the stored snapshot
func (r *ContactRepository) SaveContacts(ctx context.Context, userID string, contacts []*entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SaveCount[userID]++
	if r.FailSaves {
		return pkgerrors.NewDatabaseError("save contacts", context.DeadlineExceeded)
	}

	snapshot := make([]*entities.Contact, len(contacts))
	copy(snapshot, contacts)
	r.snapshots[userID] = snapshot
	return nil
}

// TimelineRepository keeps timeline snapshots in a map keyed by user id
type TimelineRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]*entities.TimelineEvent
	SaveCount map[string]int
	FailSaves bool
}

// NewTimelineRepository creates an empty in-memory timeline repository
func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{
		snapshots: make(map[string][]*entities.TimelineEvent),
		SaveCount: make(map[string]int),
	}
}

// LoadEvents returns a copy of the stored snapshot
func (r *TimelineRepository) LoadEvents(ctx context.Context, userID string) ([]*entities.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.snapshots[userID]
	out := make([]*entities.TimelineEvent, len(stored))
	copy(out, stored)
	return out, nil
}

// SaveEvents replaces the stored snapshot
func (r *TimelineRepository) SaveEvents(ctx context.Context, userID string, events []*entities.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.SaveCount[userID]++
	if r.FailSaves {
		return pkgerrors.NewDatabaseError("save timeline", context.DeadlineExceeded)
	}

	snapshot := make([]*entities.TimelineEvent, len(events))
	copy(snapshot, events)
	r.snapshots[userID] = snapshot
	return nil
}

// UserRepository keeps users in a map keyed by email
type UserRepository struct {
	mu          sync.RWMutex
	byEmail     map[string]*ports.User
	initialized map[string]bool
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail:     make(map[string]*ports.User),
		initialized: make(map[string]bool),
	}
}

// CreateUser stores a new user, rejecting duplicate emails
func (r *UserRepository) CreateUser(ctx context.Context, user *ports.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return pkgerrors.NewConflictError("email already registered")
	}

	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

// GetUserByEmail returns the user or a not-found error
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*ports.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	out := *user
	return &out, nil
}

// EnsureInitialized writes the one-time marker, reporting first use
func (r *UserRepository) EnsureInitialized(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized[userID] {
		return false, nil
	}
	r.initialized[userID] = true
	return true, nil
}
