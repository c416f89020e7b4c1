package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Quick-coder123/zvit/internal/logger"
	"github.com/Quick-coder123/zvit/internal/serviceiface"
)

// UserSession is the explicit session context for a signed-in user. It is
// acquired on login and invalidated on logout; handlers resolve the acting
// user through it instead of any ambient state.
type UserSession struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	LastLoginTime string `json:"last_login_time"`
	ClientIP      string `json:"client_ip"`
}

type AuthService struct {
	db             *sql.DB
	maxUsers       int
	sessionTimeout time.Duration
	sessions       map[string]*UserSession
	byUserID       map[string]*UserSession
	mu             sync.Mutex
	stopCh         chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers, sessionTimeoutMinutes int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 50
	}
	if sessionTimeoutMinutes <= 0 {
		sessionTimeoutMinutes = 480
	}
	return &AuthService{
		db:             db,
		maxUsers:       maxUsers,
		sessionTimeout: time.Duration(sessionTimeoutMinutes) * time.Minute,
		sessions:       make(map[string]*UserSession),
		byUserID:       make(map[string]*UserSession),
		stopCh:         make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

// Login checks credentials against the users table and returns a session.
// A user who is already signed in gets their existing session back.
func (a *AuthService) Login(email, password, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, s := range a.sessions {
		if s.Email == email {
			s.LastLoginTime = time.Now().Format(time.RFC3339)
			s.ClientIP = clientIP
			a.logAudit(fmt.Sprintf("user %s re-logged in, returning existing session", email))
			return s, nil
		}
	}

	if len(a.sessions) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var userID, name string
	var role sql.NullString
	err := a.db.QueryRow(
		`SELECT id, employee_name, role FROM users WHERE email = $1 AND password = $2`,
		email, password,
	).Scan(&userID, &name, &role)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	session := &UserSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          role.String,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
	}
	a.sessions[session.SessionID] = session
	a.byUserID[userID] = session
	a.logAudit("user logged in: " + email)
	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, ok := a.sessions[sessionID]
	if !ok {
		return errors.New("session not found")
	}
	delete(a.sessions, sessionID)
	delete(a.byUserID, session.UserID)
	a.logAudit("user logged out: " + session.Email)
	return nil
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := make([]*UserSession, 0, len(a.sessions))
	for _, s := range a.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// sessionCleaner drops sessions idle past the timeout.
func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.expireSessions()
		}
	}
}

func (a *AuthService) expireSessions() {
	a.mu.Lock()
	defer a.mu.Unlock()
	cutoff := time.Now().Add(-a.sessionTimeout)
	for id, s := range a.sessions {
		last, err := time.Parse(time.RFC3339, s.LastLoginTime)
		if err != nil || last.Before(cutoff) {
			delete(a.sessions, id)
			delete(a.byUserID, s.UserID)
			a.logAudit("session expired: " + s.Email)
		}
	}
}

func (a *AuthService) logAudit(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
	}
}

var globalAuthService *AuthService

// SetGlobalAuthService wires the running AuthService for package-level lookups.
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService.
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}
