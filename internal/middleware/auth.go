package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/preptrack/preptrack-go/internal/crypto"
)

// TokenHeader carries the session token. The web client sends it instead of
// an Authorization header.
const TokenHeader = "X-Auth-Token"

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a session token to the user it was issued to.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// TokenAuth returns middleware that rejects requests without a valid token in
// TokenHeader. Every verification failure gets the same 401 response.
func TokenAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := tokens.Verify(r.Header.Get(TokenHeader))
			if err != nil {
				event := zerolog.Ctx(r.Context()).Debug().Err(err)
				var invalid *crypto.InvalidTokenError
				if errors.As(err, &invalid) {
					event = event.Stringer("reason", invalid.Reason)
				}
				event.Msg("token rejected")

				writeJSONError(w, http.StatusUnauthorized, "Authorization denied")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a copy of ctx carrying userID, as TokenAuth would.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
