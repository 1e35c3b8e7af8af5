package handlers

import (
	"net/http"

	"lifemap-backend/application/services"
	"lifemap-backend/pkg/auth"
	"lifemap-backend/pkg/common"
	"lifemap-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *services.AuthService
	contacts    *services.ContactService
	timeline    *services.TimelineService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *services.AuthService,
	contacts *services.ContactService,
	timeline *services.TimelineService,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		contacts:    contacts,
		timeline:    timeline,
		logger:      logger,
	}
}

// RegisterRequest is the request body for POST /auth/register
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// Logout handles POST /session/logout. The in-memory collections are
// discarded; the stored snapshots stay as they were after the last
// successful persist.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	h.contacts.Logout(userCtx.UserID)
	h.timeline.Logout(userCtx.UserID)

	h.logger.Info("User logged out", zap.String("userID", userCtx.UserID))
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
