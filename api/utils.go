package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Quick-coder123/zvit/api/constants"
)

// RespondWithError sends a JSON error body with the given status.
func RespondWithError(w http.ResponseWriter, status int, errMsg string) {
	log.Println("[ERROR]", errMsg)
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   errMsg,
	})
}

// RespondWithResult sends a consistent JSON response for success or error.
func RespondWithResult(w http.ResponseWriter, success bool, errMsg string) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	if success {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		return
	}
	log.Println("[ERROR] RespondWithResult", errMsg)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": errMsg})
}

// RespondWithPayload sends a consistent JSON response with a `rows` payload.
func RespondWithPayload(w http.ResponseWriter, success bool, errMsg string, payload interface{}) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	resp := map[string]interface{}{"success": success}
	if !success && errMsg != "" {
		resp["error"] = errMsg
		log.Println("[ERROR] RespondWithPayload", errMsg)
	}
	if payload != nil {
		resp["rows"] = payload
	}
	json.NewEncoder(w).Encode(resp)
}

// LogError logs an error message through the shared log output.
func LogError(msg string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+msg, args...)
	} else {
		log.Println("[ERROR]", msg)
	}
}
