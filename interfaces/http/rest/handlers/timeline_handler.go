package handlers

import (
	"net/http"

	"lifemap-backend/application/services"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	"lifemap-backend/pkg/auth"
	"lifemap-backend/pkg/common"
	"lifemap-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TimelineHandler handles timeline-related HTTP requests
type TimelineHandler struct {
	timeline *services.TimelineService
	logger   *zap.Logger
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timeline *services.TimelineService, logger *zap.Logger) *TimelineHandler {
	return &TimelineHandler{timeline: timeline, logger: logger}
}

// TimelineEventRequest is the request body for creating or updating an
// event
type TimelineEventRequest struct {
	MonthYear         string `json:"monthYear" validate:"required,max=10"`
	ProfessionalEvent string `json:"professionalEvent" validate:"omitempty,max=5000"`
	PersonalEvent     string `json:"personalEvent" validate:"omitempty,max=5000"`
	GeographicEvent   string `json:"geographicEvent" validate:"omitempty,max=5000"`
}

// TimelineEventResponse is the wire shape of one event
type TimelineEventResponse struct {
	ID                string `json:"id"`
	MonthYear         string `json:"monthYear"`
	ProfessionalEvent string `json:"professionalEvent,omitempty"`
	PersonalEvent     string `json:"personalEvent,omitempty"`
	GeographicEvent   string `json:"geographicEvent,omitempty"`
}

// ParseResumeRequest is the request body for POST /timeline/parse-resume
type ParseResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

// ListEvents handles GET /timeline
func (h *TimelineHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	events, err := h.timeline.List(r.Context(), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, eventResponses(events))
}

// CreateEvent handles POST /timeline
func (h *TimelineHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	req, monthYear, ok := h.parseEventRequest(w, r)
	if !ok {
		return
	}

	event, err := entities.NewTimelineEvent(monthYear, req.ProfessionalEvent, req.PersonalEvent, req.GeographicEvent)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.timeline.Add(r.Context(), userCtx.UserID, event); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, eventResponse(event))
}

// UpdateEvent handles PUT /timeline/{eventID}
func (h *TimelineHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	eventID := chi.URLParam(r, "eventID")

	req, monthYear, ok := h.parseEventRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.timeline.Update(r.Context(), userCtx.UserID, eventID, monthYear,
		req.ProfessionalEvent, req.PersonalEvent, req.GeographicEvent)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, eventResponse(updated))
}

// DeleteEvent handles DELETE /timeline/{eventID}
func (h *TimelineHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if err := h.timeline.Remove(r.Context(), userCtx.UserID, eventID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// ParseResume handles POST /timeline/parse-resume
func (h *TimelineHandler) ParseResume(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req ParseResumeRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	added, err := h.timeline.ImportResume(r.Context(), userCtx.UserID, req.Text)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("Resume parsed into timeline events",
		zap.String("userID", userCtx.UserID),
		zap.Int("added", added),
	)

	common.RespondJSON(w, http.StatusOK, map[string]int{"added": added})
}

func (h *TimelineHandler) parseEventRequest(w http.ResponseWriter, r *http.Request) (TimelineEventRequest, valueobjects.MonthYear, bool) {
	var req TimelineEventRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return req, valueobjects.MonthYear{}, false
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return req, valueobjects.MonthYear{}, false
	}

	monthYear, err := valueobjects.ParseMonthYear(req.MonthYear)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "monthYear must be MM/YYYY")
		return req, valueobjects.MonthYear{}, false
	}

	return req, monthYear, true
}

func eventResponse(event *entities.TimelineEvent) TimelineEventResponse {
	return TimelineEventResponse{
		ID:                event.ID(),
		MonthYear:         event.MonthYear().String(),
		ProfessionalEvent: event.ProfessionalEvent(),
		PersonalEvent:     event.PersonalEvent(),
		GeographicEvent:   event.GeographicEvent(),
	}
}

func eventResponses(events []*entities.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, eventResponse(event))
	}
	return out
}
