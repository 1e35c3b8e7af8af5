package services

import (
	"context"
	"sync"

	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	domainservices "lifemap-backend/domain/services"
	"lifemap-backend/application/ports"
	pkgerrors "lifemap-backend/pkg/errors"

	"go.uber.org/zap"
)

// StoreState is the lifecycle state of a user's in-memory collection
type StoreState int

const (
	StateUninitialized StoreState = iota
	StateLoading
	StateReady
)

// contactSession holds one user's in-memory collection. Collections of
// different users are fully disjoint.
type contactSession struct {
	state            StoreState
	contacts         []*entities.Contact
	persistSuspended bool
}

// ImportSummary reports what an import batch did to the store
type ImportSummary struct {
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// ContactService owns the canonical in-memory contact collection for each
// active user and pushes a full snapshot to the repository after every
// successful mutation. In-memory state stays authoritative when a write
// fails; durability is degraded, not correctness.
type ContactService struct {
	repo   ports.ContactRepository
	cfg    *domainconfig.DomainConfig
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*contactSession
}

// NewContactService creates a new contact service
func NewContactService(repo ports.ContactRepository, cfg *domainconfig.DomainConfig, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*contactSession),
	}
}

// session returns the ready session for a user, loading the stored
// snapshot on first access (uninitialized -> loading -> ready).
func (s *ContactService) session(ctx context.Context, userID string) (*contactSession, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("user id is required")
	}

	sess, ok := s.sessions[userID]
	if ok && sess.state == StateReady {
		return sess, nil
	}

	sess = &contactSession{state: StateLoading}
	s.sessions[userID] = sess

	contacts, err := s.repo.LoadContacts(ctx, userID)
	if err != nil {
		delete(s.sessions, userID)
		return nil, pkgerrors.Wrap(err, "failed to load contacts")
	}

	sess.contacts = contacts
	sess.state = StateReady
	return sess, nil
}

// State returns the lifecycle state of a user's store
func (s *ContactService) State(userID string) StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess.state
	}
	return StateUninitialized
}

// List returns a copy of the user's contact collection
func (s *ContactService) List(ctx context.Context, userID string) ([]*entities.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Contact, len(sess.contacts))
	copy(out, sess.contacts)
	return out, nil
}

// Add appends contacts to the collection and persists the snapshot. Ids
// are assigned at construction, so every contact arriving here has one.
func (s *ContactService) Add(ctx context.Context, userID string, contacts []*entities.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	if len(sess.contacts)+len(contacts) > s.cfg.MaxContactsPerUser {
		return pkgerrors.NewValidationError("contact limit reached")
	}
	for _, contact := range contacts {
		if err := s.validate(contact); err != nil {
			return err
		}
	}

	sess.contacts = append(sess.contacts, contacts...)
	s.persist(ctx, userID, sess)
	return nil
}

// Update merges a patch into one contact. The notes rule applies here the
// same as during import: a patch that never mentions notes cannot clear
// stored notes.
func (s *ContactService) Update(ctx context.Context, userID, contactID string, patch entities.ContactPatch) (*entities.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, contact := range sess.contacts {
		if contact.ID().String() == contactID {
			updated := contact.Apply(patch)
			if err := s.validate(updated); err != nil {
				return nil, err
			}
			sess.contacts[i] = updated
			s.persist(ctx, userID, sess)
			return updated, nil
		}
	}

	return nil, pkgerrors.NewNotFoundError("contact")
}

// validate enforces the configured limits on a contact's fields
func (s *ContactService) validate(contact *entities.Contact) error {
	f := contact.Fields()
	for _, v := range []string{f.FirstName, f.LastName, f.EmailAddress, f.PhoneNumber, f.LinkedInProfile, f.Source} {
		if len(v) > s.cfg.MaxFieldLength {
			return pkgerrors.NewValidationError("contact field exceeds maximum length")
		}
	}
	if len(f.Notes.Value()) > s.cfg.MaxNotesLength {
		return pkgerrors.NewValidationError("notes exceed maximum length")
	}
	if !s.cfg.AllowEmptyNames && f.FirstName == "" && f.LastName == "" {
		return pkgerrors.NewValidationError("contact must have a first or last name")
	}
	return nil
}

// UpdateMany applies a batch of patches with persistence suspended, then
// performs exactly one snapshot write. The suspension is bounded to this
// call; the flag is always cleared before returning.
func (s *ContactService) UpdateMany(ctx context.Context, userID string, updates []domainservices.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	sess.persistSuspended = true
	for _, update := range updates {
		for i, contact := range sess.contacts {
			if contact.ID().Equals(update.ID) {
				sess.contacts[i] = contact.Apply(update.Patch)
				break
			}
		}
	}
	sess.persistSuspended = false

	s.persist(ctx, userID, sess)
	return nil
}

// Remove deletes a contact by id and persists the snapshot
func (s *ContactService) Remove(ctx context.Context, userID, contactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	for i, contact := range sess.contacts {
		if contact.ID().String() == contactID {
			sess.contacts = append(sess.contacts[:i], sess.contacts[i+1:]...)
			s.persist(ctx, userID, sess)
			return nil
		}
	}

	return pkgerrors.NewNotFoundError("contact")
}

// Import reconciles a candidate batch into the collection: one
// deterministic matching pass against the current snapshot, one apply, one
// snapshot write. No partial state is ever persisted.
func (s *ContactService) Import(ctx context.Context, userID string, candidates []domainservices.Candidate) (ImportSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(candidates) > s.cfg.MaxImportBatchSize {
		return ImportSummary{}, pkgerrors.NewValidationError("import batch too large")
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return ImportSummary{}, err
	}

	// An empty batch (e.g. a re-import of an empty export) is a no-op,
	// not an error.
	if len(candidates) == 0 {
		return ImportSummary{Total: len(sess.contacts)}, nil
	}

	result := domainservices.Reconcile(sess.contacts, candidates)

	sess.persistSuspended = true
	sess.contacts = domainservices.ApplyReconciliation(sess.contacts, result)
	sess.persistSuspended = false

	s.persist(ctx, userID, sess)

	return ImportSummary{
		Updated:  len(result.Updates),
		Inserted: len(result.Inserts),
		Total:    len(sess.contacts),
	}, nil
}

// Logout clears the user's in-memory collection without persisting it
func (s *ContactService) Logout(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

// persist writes the full collection snapshot. Failures are logged and
// swallowed: the in-memory collection remains authoritative for the
// session and the operation itself has already succeeded.
func (s *ContactService) persist(ctx context.Context, userID string, sess *contactSession) {
	if sess.persistSuspended {
		return
	}

	if err := s.repo.SaveContacts(ctx, userID, sess.contacts); err != nil {
		s.logger.Error("Failed to persist contact snapshot",
			zap.String("userID", userID),
			zap.Int("count", len(sess.contacts)),
			zap.Error(err),
		)
	}
}
