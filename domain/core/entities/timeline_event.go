package entities

import (
	"lifemap-backend/domain/core/valueobjects"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/google/uuid"
)

// TimelineEvent represents one dated life event. At least one of the three
// event texts must be present; professionalEvent may embed simple bold
// markup and bullet lines.
type TimelineEvent struct {
	id                string
	monthYear         valueobjects.MonthYear
	professionalEvent string
	personalEvent     string
	geographicEvent   string
}

// NewTimelineEvent creates a timeline event with a generated id
func NewTimelineEvent(monthYear valueobjects.MonthYear, professional, personal, geographic string) (*TimelineEvent, error) {
	if monthYear.IsZero() {
		return nil, pkgerrors.NewValidationError("event date is required")
	}
	if professional == "" && personal == "" && geographic == "" {
		return nil, pkgerrors.NewValidationError("event must have at least one entry")
	}
	return &TimelineEvent{
		id:                uuid.New().String(),
		monthYear:         monthYear,
		professionalEvent: professional,
		personalEvent:     personal,
		geographicEvent:   geographic,
	}, nil
}

// ReconstructTimelineEvent creates a timeline event from storage
func ReconstructTimelineEvent(id string, monthYear valueobjects.MonthYear, professional, personal, geographic string) *TimelineEvent {
	return &TimelineEvent{
		id:                id,
		monthYear:         monthYear,
		professionalEvent: professional,
		personalEvent:     personal,
		geographicEvent:   geographic,
	}
}

// ID returns the event's unique identifier
func (e *TimelineEvent) ID() string {
	return e.id
}

// MonthYear returns the event's date
func (e *TimelineEvent) MonthYear() valueobjects.MonthYear {
	return e.monthYear
}

// ProfessionalEvent returns the professional event text
func (e *TimelineEvent) ProfessionalEvent() string {
	return e.professionalEvent
}

// PersonalEvent returns the personal event text
func (e *TimelineEvent) PersonalEvent() string {
	return e.personalEvent
}

// GeographicEvent returns the geographic event text
func (e *TimelineEvent) GeographicEvent() string {
	return e.geographicEvent
}

// Update replaces the event's fields, keeping the id, and returns a fresh
// event
func (e *TimelineEvent) Update(monthYear valueobjects.MonthYear, professional, personal, geographic string) (*TimelineEvent, error) {
	if monthYear.IsZero() {
		return nil, pkgerrors.NewValidationError("event date is required")
	}
	if professional == "" && personal == "" && geographic == "" {
		return nil, pkgerrors.NewValidationError("event must have at least one entry")
	}
	return &TimelineEvent{
		id:                e.id,
		monthYear:         monthYear,
		professionalEvent: professional,
		personalEvent:     personal,
		geographicEvent:   geographic,
	}, nil
}

// Before reports whether e is chronologically before other; used to keep
// the timeline sorted ascending by (year, month).
func (e *TimelineEvent) Before(other *TimelineEvent) bool {
	return e.monthYear.Before(other.monthYear)
}
