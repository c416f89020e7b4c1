package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Quick-coder123/zvit/api/auth"
	"github.com/Quick-coder123/zvit/api/constants"
	"github.com/Quick-coder123/zvit/internal/validation"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionFromCtx returns the session attached by SessionMiddleware, or nil.
func SessionFromCtx(ctx context.Context) *auth.UserSession {
	if session, ok := ctx.Value(SessionKey).(*auth.UserSession); ok {
		return session
	}
	return nil
}

// UserEmailFromCtx returns the signed-in user's email, or "".
func UserEmailFromCtx(ctx context.Context) string {
	if session := SessionFromCtx(ctx); session != nil {
		return session.Email
	}
	return ""
}

// SessionMiddleware rejects requests that do not carry the user_id of a live
// session. The id is read from the JSON body (re-buffered for the handler),
// the multipart form, or the query string. The matched session lands in the
// request context.
func SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := validation.ExtractUserID(r)
			if err != nil {
				log.Println("[ERROR] Missing user_id in request:", r.URL.Path)
				w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   constants.ErrMissingUserID,
				})
				return
			}

			session := validation.ValidateSession(userID)
			if session == nil {
				log.Println("[ERROR] Invalid session for user_id:", userID)
				w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   constants.ErrInvalidSession,
				})
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
