package services

import (
	"context"
	"strings"
	"time"

	"lifemap-backend/application/ports"
	"lifemap-backend/pkg/auth"
	pkgerrors "lifemap-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful register or login hands back to the
// transport layer
type AuthResult struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
	NewUser     bool   `json:"newUser,omitempty"`
}

// AuthService handles registration and login. Passwords are stored as
// bcrypt hashes; a successful login is represented by the issued token
// alone, there is no server-side session record.
type AuthService struct {
	users      ports.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users ports.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a user with a unique email and signs them in. The
// first-login marker is written here so downstream features can tell a
// brand-new account from a returning one.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.NewValidationError("email is required")
	}
	if len(password) < 8 {
		return nil, pkgerrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to hash password").WithCause(err)
	}

	user := &ports.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if pkgerrors.IsConflict(err) {
			return nil, pkgerrors.NewConflictError("an account with this email already exists")
		}
		return nil, pkgerrors.Wrap(err, "failed to create user")
	}

	firstLogin, err := s.users.EnsureInitialized(ctx, user.ID)
	if err != nil {
		s.logger.Warn("Failed to write initialization marker",
			zap.String("userID", user.ID),
			zap.Error(err),
		)
		firstLogin = true
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("User registered", zap.String("userID", user.ID))

	return &AuthResult{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Token:       token,
		NewUser:     firstLogin,
	}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so the response does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, pkgerrors.NewValidationError("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, pkgerrors.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	firstLogin, err := s.users.EnsureInitialized(ctx, user.ID)
	if err != nil {
		s.logger.Warn("Failed to check initialization marker",
			zap.String("userID", user.ID),
			zap.Error(err),
		)
		firstLogin = false
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("User logged in", zap.String("userID", user.ID))

	return &AuthResult{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Token:       token,
		NewUser:     firstLogin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
