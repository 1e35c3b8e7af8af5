package services

import (
	"context"
	"sort"
	"sync"

	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	domainservices "lifemap-backend/domain/services"
	"lifemap-backend/application/ports"
	pkgerrors "lifemap-backend/pkg/errors"

	"go.uber.org/zap"
)

type timelineSession struct {
	state  StoreState
	events []*entities.TimelineEvent
}

// TimelineService owns the per-user timeline collection: plain CRUD, kept
// sorted ascending by (year, month), full-snapshot persistence after every
// mutation. There is no merge logic here.
type TimelineService struct {
	repo   ports.TimelineRepository
	cfg    *domainconfig.DomainConfig
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*timelineSession
}

// NewTimelineService creates a new timeline service
func NewTimelineService(repo ports.TimelineRepository, cfg *domainconfig.DomainConfig, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*timelineSession),
	}
}

func (s *TimelineService) session(ctx context.Context, userID string) (*timelineSession, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("user id is required")
	}

	sess, ok := s.sessions[userID]
	if ok && sess.state == StateReady {
		return sess, nil
	}

	sess = &timelineSession{state: StateLoading}
	s.sessions[userID] = sess

	events, err := s.repo.LoadEvents(ctx, userID)
	if err != nil {
		delete(s.sessions, userID)
		return nil, pkgerrors.Wrap(err, "failed to load timeline")
	}

	sess.events = events
	sortEvents(sess.events)
	sess.state = StateReady
	return sess, nil
}

// List returns a copy of the user's timeline, sorted ascending
func (s *TimelineService) List(ctx context.Context, userID string) ([]*entities.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.TimelineEvent, len(sess.events))
	copy(out, sess.events)
	return out, nil
}

// Add appends events, re-sorts and persists the snapshot
func (s *TimelineService) Add(ctx context.Context, userID string, events ...*entities.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	if len(sess.events)+len(events) > s.cfg.MaxTimelineEvents {
		return pkgerrors.NewValidationError("timeline event limit reached")
	}
	for _, event := range events {
		if err := s.validate(event); err != nil {
			return err
		}
	}

	sess.events = append(sess.events, events...)
	sortEvents(sess.events)
	s.persist(ctx, userID, sess)
	return nil
}

// Update replaces an event's fields by id
func (s *TimelineService) Update(ctx context.Context, userID, eventID string, monthYear valueobjects.MonthYear, professional, personal, geographic string) (*entities.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, event := range sess.events {
		if event.ID() == eventID {
			updated, err := event.Update(monthYear, professional, personal, geographic)
			if err != nil {
				return nil, err
			}
			if err := s.validate(updated); err != nil {
				return nil, err
			}
			sess.events[i] = updated
			sortEvents(sess.events)
			s.persist(ctx, userID, sess)
			return updated, nil
		}
	}

	return nil, pkgerrors.NewNotFoundError("timeline event")
}

// Remove deletes an event by id
func (s *TimelineService) Remove(ctx context.Context, userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	for i, event := range sess.events {
		if event.ID() == eventID {
			sess.events = append(sess.events[:i], sess.events[i+1:]...)
			s.persist(ctx, userID, sess)
			return nil
		}
	}

	return pkgerrors.NewNotFoundError("timeline event")
}

// ImportResume parses pasted resume text and adds one professional event
// per extracted job. A text that yields no entries is a reported failure,
// never a silent no-op.
func (s *TimelineService) ImportResume(ctx context.Context, userID, text string) (int, error) {
	entries, err := domainservices.ParseResume(text)
	if err != nil {
		return 0, err
	}

	events := make([]*entities.TimelineEvent, 0, len(entries))
	for _, entry := range entries {
		event, err := entry.TimelineEvent()
		if err != nil {
			return 0, err
		}
		events = append(events, event)
	}

	if err := s.Add(ctx, userID, events...); err != nil {
		return 0, err
	}
	return len(events), nil
}

// validate enforces the configured limit on event text lengths
func (s *TimelineService) validate(event *entities.TimelineEvent) error {
	for _, text := range []string{event.ProfessionalEvent(), event.PersonalEvent(), event.GeographicEvent()} {
		if len(text) > s.cfg.MaxEventLength {
			return pkgerrors.NewValidationError("event text exceeds maximum length")
		}
	}
	return nil
}

// Logout clears the user's in-memory timeline without persisting it
func (s *TimelineService) Logout(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

func (s *TimelineService) persist(ctx context.Context, userID string, sess *timelineSession) {
	if err := s.repo.SaveEvents(ctx, userID, sess.events); err != nil {
		s.logger.Error("Failed to persist timeline snapshot",
			zap.String("userID", userID),
			zap.Int("count", len(sess.events)),
			zap.Error(err),
		)
	}
}

func sortEvents(events []*entities.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j])
	})
}
