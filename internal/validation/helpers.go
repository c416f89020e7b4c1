package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Quick-coder123/zvit/api/auth"
	"github.com/Quick-coder123/zvit/internal/config"
)

// ExtractUserID pulls the acting user's id out of a request without consuming
// it: JSON bodies are re-buffered for the handler, multipart and url-encoded
// forms go through the form parser, and query parameters are the last resort
// for bodiless methods.
func ExtractUserID(r *http.Request) (string, error) {
	ct := strings.ToLower(r.Header.Get("Content-Type"))

	if strings.Contains(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err == nil {
			if userID := r.FormValue("user_id"); userID != "" {
				return userID, nil
			}
		}
		return "", fmt.Errorf("user_id not found in request")
	}

	if r.Body != nil && strings.Contains(ct, "application/json") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewBuffer(body))

		var reqMap map[string]interface{}
		if err := json.Unmarshal(body, &reqMap); err == nil {
			if userID, ok := reqMap["user_id"].(string); ok && userID != "" {
				return userID, nil
			}
		}
	}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		return userID, nil
	}
	return "", fmt.Errorf("user_id not found in request")
}

// ValidateSession checks if the user has an active session (in-memory check,
// no DB). Returns the session object or nil if not found.
func ValidateSession(userID string) *auth.UserSession {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}
