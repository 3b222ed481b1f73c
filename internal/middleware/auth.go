package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasktrack/tasktrack-go/internal/crypto"
	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/service"
)

type contextKey string

const callerKey contextKey = "caller"

// JWTAuth returns middleware that validates a Bearer access token from the
// Authorization header and stores the caller's identity in the context.
func JWTAuth(tokens *crypto.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeAuthError(w, "invalid authorization format")
				return
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			caller := service.Caller{ID: claims.UserID, IsAdmin: claims.IsAdmin}
			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext extracts the authenticated caller from the request context.
func CallerFromContext(ctx context.Context) (service.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(service.Caller)
	return caller, ok
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(model.ErrorEnvelope(msg))
}
