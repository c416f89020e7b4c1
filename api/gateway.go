package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"

	"github.com/Quick-coder123/zvit/api/auth"
	"github.com/Quick-coder123/zvit/api/constants"
	"github.com/Quick-coder123/zvit/internal/logger"
	"github.com/Quick-coder123/zvit/pkg/loadbalancer"
)

var (
	authService     *auth.AuthService
	authServiceOnce sync.Once
)

// SetAuthService wires the AuthService from the app manager.
func SetAuthService(svc *auth.AuthService) {
	authServiceOnce.Do(func() {
		authService = svc
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

func gatewayAudit(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
		return
	}
	log.Println(msg)
}

// LoginHandler handles POST /auth/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, constants.ErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, constants.ErrInvalidJSON, http.StatusBadRequest)
		return
	}
	if authService == nil {
		http.Error(w, "Auth service unavailable", http.StatusInternalServerError)
		return
	}
	session, err := authService.Login(req.Email, req.Password, extractClientIP(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	json.NewEncoder(w).Encode(session)
}

// LogoutHandler handles POST /auth/logout
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, constants.ErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, constants.ErrInvalidJSON, http.StatusBadRequest)
		return
	}
	if authService == nil {
		http.Error(w, "Auth service unavailable", http.StatusInternalServerError)
		return
	}
	if err := authService.Logout(req.SessionID); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"logout successful"}`))
}

func GetSessionsHandler(w http.ResponseWriter, r *http.Request) {
	if authService == nil {
		http.Error(w, "Auth service unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	json.NewEncoder(w).Encode(authService.GetActiveSessions())
}

// createReverseProxy returns a proxy handler that forwards to the next
// backend from the pool and audit-logs the outcome.
func createReverseProxy(backends *loadbalancer.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gatewayAudit(fmt.Sprintf("[Gateway] %s %s from %s", r.Method, r.URL.Path, extractClientIP(r)))

		target := backends.Next()
		u, err := url.Parse(target)
		if err != nil || target == "" {
			gatewayAudit(fmt.Sprintf("[Gateway][ERROR] bad target URL %q for %s", target, r.URL.Path))
			http.Error(w, "Bad target URL", http.StatusInternalServerError)
			return
		}
		proxy := httputil.NewSingleHostReverseProxy(u)

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		proxy.ServeHTTP(rw, r)
		if rw.statusCode >= 400 {
			gatewayAudit(fmt.Sprintf("[Gateway][ERROR] proxied %s, status %d: %s", r.URL.Path, rw.statusCode, rw.body.String()))
		} else {
			gatewayAudit(fmt.Sprintf("[Gateway] proxied %s, status %d", r.URL.Path, rw.statusCode))
		}
	}
}

// responseWriter captures status code and body for gateway logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// StartGateway starts the public entry point: auth endpoints plus a reverse
// proxy in front of the record-service backends.
func StartGateway(port int, zvitBackends []string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", LoginHandler)
	mux.HandleFunc("/auth/logout", LogoutHandler)
	mux.HandleFunc("/get-sessions", GetSessionsHandler)
	mux.HandleFunc("/zvit/", createReverseProxy(loadbalancer.New(zvitBackends...)))

	mux.HandleFunc("/healt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API Gateway is healthy"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gatewayAudit("[Gateway] [Error] " + r.URL.Path + " from " + r.RemoteAddr + " (route not found)")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 - Route not found"))
	})

	log.Printf("API Gateway started on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		log.Fatalf("Gateway server failed: %v", err)
	}
}
