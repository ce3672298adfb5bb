package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"gamewatch-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Authenticate validates the Bearer token on every request and stores the
// resulting user context. Rate limits are applied per client IP before
// validation and per user after it.
func Authenticate(tokens *auth.TokenService, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100)     // requests per minute per IP
	userLimiter := auth.NewUserRateLimiter(200) // requests per minute per user

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, _ := ipLimiter.Allow(r.Context(), clientIP)
			if !allowed {
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			token := extractToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				switch err {
				case auth.ErrExpiredToken:
					respondError(w, http.StatusUnauthorized, "token has expired")
				case auth.ErrInvalidSignature:
					respondError(w, http.StatusUnauthorized, "invalid token signature")
				default:
					respondError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				respondError(w, http.StatusTooManyRequests, "user rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID:   claims.UserID,
				Username: claims.Username,
				IsAdmin:  claims.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose token lacks the admin
// claim. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests whose {user_id} URL parameter does not
// match the authenticated user. Admins may act on any user's resources.
// Must run after Authenticate.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		userID := chi.URLParam(r, "user_id")
		if userID != "" && userID != user.UserID && !user.IsAdmin {
			respondError(w, http.StatusForbidden, "cannot act on another user's resources")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken pulls the JWT out of the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

// getClientIP extracts the client IP address, preferring proxy headers.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
