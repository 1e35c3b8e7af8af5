package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"lifemap-backend/application/services"
	domainconfig "lifemap-backend/domain/config"
	"lifemap-backend/domain/core/entities"
	"lifemap-backend/domain/core/valueobjects"
	domainservices "lifemap-backend/domain/services"
	"lifemap-backend/pkg/auth"
	"lifemap-backend/pkg/common"
	pkgerrors "lifemap-backend/pkg/errors"
	"lifemap-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contacts *services.ContactService
	importer *services.ImportService
	cfg      *domainconfig.DomainConfig
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(
	contacts *services.ContactService,
	importer *services.ImportService,
	cfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		importer: importer,
		cfg:      cfg,
		logger:   logger,
	}
}

// ContactRequest is the request body for creating or updating a contact.
// Notes is a pointer so the handler can tell "notes omitted" from "notes
// cleared".
type ContactRequest struct {
	FirstName       string  `json:"firstName" validate:"omitempty,max=500"`
	LastName        string  `json:"lastName" validate:"omitempty,max=500"`
	EmailAddress    string  `json:"emailAddress" validate:"omitempty,max=500"`
	PhoneNumber     string  `json:"phoneNumber" validate:"omitempty,max=500"`
	LinkedInProfile string  `json:"linkedInProfile" validate:"omitempty,max=500"`
	DateAdded       string  `json:"dateAdded" validate:"omitempty,max=10"`
	Source          string  `json:"source" validate:"omitempty,max=500"`
	Notes           *string `json:"notes"`
}

// BatchUpdateRequest is the request body for PATCH /contacts
type BatchUpdateRequest struct {
	Updates []BatchUpdateEntry `json:"updates" validate:"required,min=1,dive"`
}

// BatchUpdateEntry is one patch in a batch update
type BatchUpdateEntry struct {
	ID string `json:"id" validate:"required"`
	ContactRequest
}

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	contacts, err := h.contacts.List(r.Context(), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, contactRecords(contacts))
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req ContactRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	dateAdded := req.DateAdded
	if dateAdded == "" {
		dateAdded = utils.CurrentMonthYear()
	}
	source := req.Source
	if source == "" {
		source = "Manual"
	}

	contact := entities.NewContact(entities.ContactFields{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EmailAddress:    req.EmailAddress,
		PhoneNumber:     req.PhoneNumber,
		LinkedInProfile: req.LinkedInProfile,
		DateAdded:       dateAdded,
		Source:          source,
		Notes:           valueobjects.NotesFromPointer(req.Notes),
	})

	if err := h.contacts.Add(r.Context(), userCtx.UserID, []*entities.Contact{contact}); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, services.RecordFromContact(contact))
}

// UpdateContact handles PUT /contacts/{contactID}
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	contactID := chi.URLParam(r, "contactID")

	var req ContactRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	updated, err := h.contacts.Update(r.Context(), userCtx.UserID, contactID, patchFromRequest(req))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, services.RecordFromContact(updated))
}

// BatchUpdateContacts handles PATCH /contacts. All patches are applied as
// one batch with a single snapshot write.
func (h *ContactHandler) BatchUpdateContacts(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req BatchUpdateRequest
	if err := common.ParseJSONBody(r, &req, 4<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	updates := make([]domainservices.Update, 0, len(req.Updates))
	for _, entry := range req.Updates {
		id, err := valueobjects.NewContactIDFromString(entry.ID)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "update entry is missing an id")
			return
		}
		updates = append(updates, domainservices.Update{
			ID:    id,
			Patch: patchFromRequest(entry.ContactRequest),
		})
	}

	if err := h.contacts.UpdateMany(r.Context(), userCtx.UserID, updates); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]int{"updated": len(updates)})
}

// DeleteContact handles DELETE /contacts/{contactID}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	contactID := chi.URLParam(r, "contactID")
	if err := h.contacts.Remove(r.Context(), userCtx.UserID, contactID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "contact deleted"})
}

// ImportContacts handles POST /contacts/import. A JSON body is a re-import
// of an earlier export; a multipart body carries an uploaded CSV or Excel
// file plus an optional column mapping.
func (h *ContactHandler) ImportContacts(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var candidates []domainservices.Candidate

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		body, err := io.ReadAll(io.LimitReader(r.Body, int64(h.cfg.MaxImportFileBytes)))
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "failed to read request body")
			return
		}
		candidates, err = h.importer.ParseJSONCandidates(body)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}

	case strings.HasPrefix(contentType, "multipart/form-data"):
		candidates, err = h.candidatesFromUpload(r)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}

	default:
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "unsupported content type")
		return
	}

	summary, err := h.contacts.Import(r.Context(), userCtx.UserID, candidates)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("Contact import completed",
		zap.String("userID", userCtx.UserID),
		zap.Int("updated", summary.Updated),
		zap.Int("inserted", summary.Inserted),
	)

	common.RespondJSON(w, http.StatusOK, summary)
}

func (h *ContactHandler) candidatesFromUpload(r *http.Request) ([]domainservices.Candidate, error) {
	if err := r.ParseMultipartForm(int64(h.cfg.MaxImportFileBytes)); err != nil {
		return nil, pkgerrors.NewValidationError("failed to parse upload")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, pkgerrors.NewValidationError("upload must include a file field")
	}
	defer file.Close()

	var mapping services.ColumnMapping
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return nil, pkgerrors.NewValidationError("column mapping must be a JSON object")
		}
	}

	var rows []map[string]string
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		rows, err = h.importer.ParseCSVRows(file)
	case ".xlsx", ".xls":
		rows, err = h.importer.ParseExcelRows(file)
	default:
		return nil, pkgerrors.NewValidationError("unsupported file type, expected .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	return h.importer.CandidatesFromRows(rows, mapping), nil
}

// ExportContacts handles GET /contacts/export
func (h *ContactHandler) ExportContacts(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	contacts, err := h.contacts.List(r.Context(), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.json"`)
	json.NewEncoder(w).Encode(contactRecords(contacts))
}

func contactRecords(contacts []*entities.Contact) []services.ContactRecord {
	records := make([]services.ContactRecord, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, services.RecordFromContact(c))
	}
	return records
}

func patchFromRequest(req ContactRequest) entities.ContactPatch {
	return entities.ContactPatch{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EmailAddress:    req.EmailAddress,
		PhoneNumber:     req.PhoneNumber,
		LinkedInProfile: req.LinkedInProfile,
		DateAdded:       req.DateAdded,
		DateEdited:      utils.CurrentMonthYear(),
		Source:          req.Source,
		Notes:           valueobjects.NotesFromPointer(req.Notes),
	}
}
