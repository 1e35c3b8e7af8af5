package middleware

import (
	"net/http"
	"strings"

	"lifemap-backend/pkg/auth"
	"lifemap-backend/pkg/common"

	"go.uber.org/zap"
)

// Authenticate validates the bearer token and injects the user context.
// Requests are rate limited per client IP before validation and per user
// after it, so an unauthenticated flood never reaches token parsing.
func Authenticate(jwtService *auth.JWTService, apiRequestsPerMinute int, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(apiRequestsPerMinute)
	userLimiter := auth.NewUserRateLimiter(apiRequestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), getClientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "rate limit exceeded")
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed authorization header")
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitByIP limits unauthenticated endpoints per client IP
func RateLimitByIP(requestsPerMinute int) func(next http.Handler) http.Handler {
	limiter := auth.NewIPRateLimiter(requestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := limiter.Allow(r.Context(), getClientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// getClientIP prefers proxy headers over the socket address
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
